package ledger

import (
	"context"
	"fmt"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Engine derives account balances and user totals from the stored transactions. Balances are always
// recomputed from scratch, never adjusted by deltas.
type Engine interface {
	// RecalculateBalance sets the balance of the account to initial amount + income - expense and returns it.
	// Called by every mutation that can change that value, inside the mutation's transaction.
	RecalculateBalance(ctx context.Context, accountId int) (decimal.Decimal, error)
	// ComputeTotals returns zeros for a guest without reading any stored data.
	ComputeTotals(ctx context.Context) (Totals, error)
	// Sum aggregates the current user's transactions. The user of the filter is always overridden.
	Sum(ctx context.Context, filter Filter) (decimal.Decimal, error)
}

type EngineImpl struct {
	repo       Repository
	transactor database.Transactor
}

func NewEngine(repo Repository, transactor database.Transactor) *EngineImpl {
	return &EngineImpl{repo: repo, transactor: transactor}
}

func (e *EngineImpl) RecalculateBalance(ctx context.Context, accountId int) (decimal.Decimal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get current user: %w", err)
	}

	var balance decimal.Decimal
	err = e.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		account, err := e.repo.GetAccountForUpdate(ctx, accountId)
		if err != nil {
			return err
		}
		if account.UserId != userId {
			return apperrors.NotOwned("account", accountId)
		}

		income, err := e.repo.Sum(ctx, Filter{AccountId: accountId, Type: Income})
		if err != nil {
			return err
		}
		expense, err := e.repo.Sum(ctx, Filter{AccountId: accountId, Type: Expense})
		if err != nil {
			return err
		}

		balance = account.InitialAmount.Add(income).Sub(expense)
		if balance.Equal(account.Balance) {
			return nil
		}
		log.Debugf("account %d balance %s -> %s", accountId, account.Balance, balance)
		return e.repo.SaveBalance(ctx, accountId, balance)
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to recalculate balance of account %d: %w", accountId, err)
	}
	return balance, nil
}

func (e *EngineImpl) ComputeTotals(ctx context.Context) (Totals, error) {
	zero := Totals{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero, TotalBalance: decimal.Zero}
	if user.IsGuest(ctx) {
		return zero, nil
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to get current user: %w", err)
	}

	income, err := e.repo.Sum(ctx, Filter{UserId: userId, Type: Income})
	if err != nil {
		return zero, err
	}
	expense, err := e.repo.Sum(ctx, Filter{UserId: userId, Type: Expense})
	if err != nil {
		return zero, err
	}
	accounts, err := e.repo.SumByAccount(ctx, userId)
	if err != nil {
		return zero, err
	}

	balance := decimal.Zero
	for _, account := range accounts {
		balance = balance.Add(account.Balance())
	}
	return Totals{TotalIncome: income, TotalExpense: expense, TotalBalance: balance}, nil
}

func (e *EngineImpl) Sum(ctx context.Context, filter Filter) (decimal.Decimal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get current user: %w", err)
	}
	filter.UserId = userId
	return e.repo.Sum(ctx, filter)
}
