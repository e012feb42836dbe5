package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrAccountNotFound = fmt.Errorf("account %w", apperrors.ErrNotFound)

type Repository interface {
	Create(ctx context.Context, account Account) (Account, error)
	// Get reads the account regardless of its owner. Ownership is checked by the service.
	Get(ctx context.Context, id int) (Account, error)
	List(ctx context.Context, userId int) ([]Account, error)
	Update(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const columns = `id, user_id, name, icon, initial_amount, balance`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.Id, &a.UserId, &a.Name, &a.Icon, &a.InitialAmount, &a.Balance)
	return a, err
}

func (r *RepositoryImpl) Create(ctx context.Context, account Account) (Account, error) {
	query := `INSERT INTO accounts (user_id, name, icon, initial_amount, balance)
			  VALUES ($1, $2, $3, $4, $4) RETURNING ` + columns
	created, err := scanAccount(database.Conn(ctx, r.db).QueryRow(ctx, query,
		account.UserId, account.Name, account.Icon, account.InitialAmount))
	if err != nil {
		return Account{}, mapWriteError(err)
	}
	return created, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Account, error) {
	query := `SELECT ` + columns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Account{}, err
	}
	return a, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]Account, error) {
	query := `SELECT ` + columns + ` FROM accounts WHERE user_id = $1 ORDER BY id`
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	accounts := make([]Account, 0, 8)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return accounts, nil
}

// Update changes name, icon and opening balance. The stored balance is left for the ledger to recompute.
func (r *RepositoryImpl) Update(ctx context.Context, account Account) (Account, error) {
	query := `UPDATE accounts SET name = $1, icon = $2, initial_amount = $3
			  WHERE id = $4 AND user_id = $5 RETURNING ` + columns
	updated, err := scanAccount(database.Conn(ctx, r.db).QueryRow(ctx, query,
		account.Name, account.Icon, account.InitialAmount, account.Id, account.UserId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, mapWriteError(err)
	}
	return updated, nil
}

// Delete removes the account. Its transactions are removed by the foreign key cascade.
func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func mapWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return apperrors.NewValidationError("name", "an account with this name already exists")
	}
	err = fmt.Errorf("could not execute query: %w", err)
	log.Error(err)
	return err
}
