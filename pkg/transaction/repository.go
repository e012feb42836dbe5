package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrTransactionNotFound = fmt.Errorf("transaction %w", apperrors.ErrNotFound)

type Repository interface {
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	// Get reads the transaction regardless of its owner. Ownership is checked by the service.
	Get(ctx context.Context, id int) (Transaction, error)
	// List returns the transactions selected by filter, newest date first.
	List(ctx context.Context, filter ledger.Filter) ([]Transaction, error)
	Update(ctx context.Context, transaction Transaction) (Transaction, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const columns = `id, user_id, account_id, category_id, amount, type, note, date`

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	var categoryId *int
	var entryType string
	if err := row.Scan(&t.Id, &t.UserId, &t.AccountId, &categoryId, &t.Amount, &entryType, &t.Note, &t.Date); err != nil {
		return Transaction{}, err
	}
	if categoryId != nil {
		t.CategoryId = *categoryId
	}
	t.Type = ledger.EntryType(entryType)
	return t, nil
}

func nullableId(id int) *int {
	if id == 0 {
		return nil
	}
	return &id
}

func (r *RepositoryImpl) Create(ctx context.Context, transaction Transaction) (Transaction, error) {
	query := `INSERT INTO transactions (user_id, account_id, category_id, amount, type, note, date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + columns
	created, err := scanTransaction(database.Conn(ctx, r.db).QueryRow(ctx, query,
		transaction.UserId, transaction.AccountId, nullableId(transaction.CategoryId), transaction.Amount,
		string(transaction.Type), transaction.Note, transaction.Date))
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	return created, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Transaction, error) {
	query := `SELECT ` + columns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	return t, nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter ledger.Filter) ([]Transaction, error) {
	query, args := listQuery(filter)
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	transactions := make([]Transaction, 0, 32)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}

func listQuery(filter ledger.Filter) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{filter.UserId}
	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
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
	query := `SELECT ` + columns + ` FROM transactions WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY date DESC, id DESC`
	return query, args
}

func (r *RepositoryImpl) Update(ctx context.Context, transaction Transaction) (Transaction, error) {
	query := `UPDATE transactions
			  SET account_id = $1, category_id = $2, amount = $3, type = $4, note = $5, date = $6
			  WHERE id = $7 AND user_id = $8
			  RETURNING ` + columns
	updated, err := scanTransaction(database.Conn(ctx, r.db).QueryRow(ctx, query,
		transaction.AccountId, nullableId(transaction.CategoryId), transaction.Amount, string(transaction.Type),
		transaction.Note, transaction.Date, transaction.Id, transaction.UserId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Transaction{}, err
	}
	return updated, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
