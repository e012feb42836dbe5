package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrAccountNotFound = fmt.Errorf("account %w", apperrors.ErrNotFound)

type Repository interface {
	// GetAccountForUpdate reads the account and locks its row until the surrounding transaction ends.
	GetAccountForUpdate(ctx context.Context, accountId int) (AccountState, error)
	Sum(ctx context.Context, filter Filter) (decimal.Decimal, error)
	SumByAccount(ctx context.Context, userId int) ([]AccountSums, error)
	SaveBalance(ctx context.Context, accountId int, balance decimal.Decimal) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetAccountForUpdate(ctx context.Context, accountId int) (AccountState, error) {
	query := `SELECT id, user_id, initial_amount, balance FROM accounts WHERE id = $1 FOR UPDATE`
	var state AccountState
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, accountId).
		Scan(&state.Id, &state.UserId, &state.InitialAmount, &state.Balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return AccountState{}, ErrAccountNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return AccountState{}, err
	}
	return state, nil
}

func (r *RepositoryImpl) Sum(ctx context.Context, filter Filter) (decimal.Decimal, error) {
	query, args := sumQuery(filter)
	var sum decimal.Decimal
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&sum)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func sumQuery(filter Filter) (string, []any) {
	var conditions []string
	var args []any
	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}
	if filter.UserId != 0 {
		add("user_id = $%d", filter.UserId)
	}
	if filter.AccountId != 0 {
		add("account_id = $%d", filter.AccountId)
	}
	if filter.CategoryId != 0 {
		add("category_id = $%d", filter.CategoryId)
	}
	if filter.Type != "" {
		add("type = $%d", string(filter.Type))
	}
	if !filter.From.IsZero() {
		add("date >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("date <= $%d", filter.To)
	}

	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	return query, args
}

func (r *RepositoryImpl) SumByAccount(ctx context.Context, userId int) ([]AccountSums, error) {
	query := `SELECT a.id,
					 a.initial_amount,
					 COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0),
					 COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0)
			  FROM accounts a
			  LEFT JOIN transactions t ON t.account_id = a.id
			  WHERE a.user_id = $1
			  GROUP BY a.id, a.initial_amount
			  ORDER BY a.id`
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var sums []AccountSums
	for rows.Next() {
		var s AccountSums
		if err := rows.Scan(&s.AccountId, &s.InitialAmount, &s.Income, &s.Expense); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return sums, nil
}

func (r *RepositoryImpl) SaveBalance(ctx context.Context, accountId int, balance decimal.Decimal) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `UPDATE accounts SET balance = $1 WHERE id = $2`, balance, accountId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
