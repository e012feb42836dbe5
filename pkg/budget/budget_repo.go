package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrBudgetNotFound = fmt.Errorf("budget %w", apperrors.ErrNotFound)

type BudgetRepo interface {
	// Upsert stores the budget, replacing the amount of an existing one for the same category and month.
	Upsert(ctx context.Context, budget Budget) (Budget, error)
	// Get reads the budget regardless of its owner.
	Get(ctx context.Context, id int) (Budget, error)
	// Find returns the budget of the category for the month, or false when there is none.
	Find(ctx context.Context, userId int, categoryId int, month time.Month, year int) (Budget, bool, error)
	GetAllForMonth(ctx context.Context, userId int, month time.Month, year int) ([]Budget, error)
	Delete(ctx context.Context, userId int, budgetId int) (bool, error)
}

type BudgetRepoImpl struct {
	db *pgxpool.Pool
}

func NewBudgetRepo(db *pgxpool.Pool) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

const columns = `id, user_id, category_id, month, year, amount, created_at`

func scanBudget(row pgx.Row) (Budget, error) {
	var b Budget
	var month int16
	if err := row.Scan(&b.ID, &b.UserId, &b.CategoryId, &month, &b.Year, &b.Amount, &b.CreatedAt); err != nil {
		return Budget{}, err
	}
	b.Month = time.Month(month)
	return b, nil
}

func (r *BudgetRepoImpl) Upsert(ctx context.Context, budget Budget) (Budget, error) {
	query := `INSERT INTO budgets (user_id, category_id, month, year, amount)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_id, category_id, month, year) DO UPDATE SET amount = EXCLUDED.amount
			  RETURNING ` + columns
	stored, err := scanBudget(database.Conn(ctx, r.db).QueryRow(ctx, query,
		budget.UserId, budget.CategoryId, int16(budget.Month), budget.Year, budget.Amount))
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	return stored, nil
}

func (r *BudgetRepoImpl) Get(ctx context.Context, id int) (Budget, error) {
	query := `SELECT ` + columns + ` FROM budgets WHERE id = $1`
	b, err := scanBudget(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	return b, nil
}

func (r *BudgetRepoImpl) Find(ctx context.Context, userId int, categoryId int, month time.Month, year int) (Budget, bool, error) {
	query := `SELECT ` + columns + ` FROM budgets WHERE user_id = $1 AND category_id = $2 AND month = $3 AND year = $4`
	b, err := scanBudget(database.Conn(ctx, r.db).QueryRow(ctx, query, userId, categoryId, int16(month), year))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Budget{}, false, err
	}
	return b, true, nil
}

func (r *BudgetRepoImpl) GetAllForMonth(ctx context.Context, userId int, month time.Month, year int) ([]Budget, error) {
	query := `SELECT ` + columns + ` FROM budgets WHERE user_id = $1 AND month = $2 AND year = $3 ORDER BY category_id`
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userId, int16(month), year)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *BudgetRepoImpl) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
