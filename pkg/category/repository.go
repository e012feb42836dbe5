package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrCategoryNotFound = fmt.Errorf("category %w", apperrors.ErrNotFound)

type Repository interface {
	Create(ctx context.Context, category Category) (Category, error)
	// Get reads the category regardless of its owner. Ownership is checked by the service.
	Get(ctx context.Context, id int) (Category, error)
	// List returns the user's categories of the given type, or all of them when entryType is empty.
	List(ctx context.Context, userId int, entryType ledger.EntryType) ([]Category, error)
	Update(ctx context.Context, category Category) (Category, error)
	// Delete removes the category. Its transactions stay, with no category.
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const columns = `id, user_id, name, type, color, icon, default_budget`

func scanCategory(row pgx.Row) (Category, error) {
	var c Category
	var entryType string
	var defaultBudget decimal.NullDecimal
	if err := row.Scan(&c.Id, &c.UserId, &c.Name, &entryType, &c.Color, &c.Icon, &defaultBudget); err != nil {
		return Category{}, err
	}
	c.Type = ledger.EntryType(entryType)
	if defaultBudget.Valid {
		c.DefaultBudget = &defaultBudget.Decimal
	}
	return c, nil
}

func nullable(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*value)
}

func (r *RepositoryImpl) Create(ctx context.Context, category Category) (Category, error) {
	query := `INSERT INTO categories (user_id, name, type, color, icon, default_budget)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + columns
	created, err := scanCategory(database.Conn(ctx, r.db).QueryRow(ctx, query,
		category.UserId, category.Name, string(category.Type), category.Color, category.Icon, nullable(category.DefaultBudget)))
	if err != nil {
		return Category{}, mapWriteError(err)
	}
	return created, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Category, error) {
	query := `SELECT ` + columns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId int, entryType ledger.EntryType) ([]Category, error) {
	query := `SELECT ` + columns + ` FROM categories WHERE user_id = $1 AND ($2 = '' OR type = $2) ORDER BY type DESC, id`
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userId, string(entryType))
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0, 16)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, category Category) (Category, error) {
	query := `UPDATE categories SET name = $1, color = $2, icon = $3, default_budget = $4
			  WHERE id = $5 AND user_id = $6 RETURNING ` + columns
	updated, err := scanCategory(database.Conn(ctx, r.db).QueryRow(ctx, query,
		category.Name, category.Color, category.Icon, nullable(category.DefaultBudget), category.Id, category.UserId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return Category{}, mapWriteError(err)
	}
	return updated, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func mapWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return apperrors.NewValidationError("name", "a category with this name and type already exists")
	}
	err = fmt.Errorf("could not execute query: %w", err)
	log.Error(err)
	return err
}
