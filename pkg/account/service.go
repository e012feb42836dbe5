package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/pkg/catalog"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/budgetbee/budgetbee/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// List returns the user's accounts, or the catalog's default accounts with zero balance for a guest.
	List(ctx context.Context) ([]Account, error)
	Get(ctx context.Context, id int) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	// Update changes name, icon and opening balance, recomputing the balance in the same transaction.
	Update(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, id int) error
	Recalculate(ctx context.Context, id int) (Account, error)
}

type ServiceImpl struct {
	repo       Repository
	ledger     ledger.Engine
	transactor database.Transactor
	catalog    catalog.Catalog
}

func NewService(repo Repository, ledger ledger.Engine, transactor database.Transactor, catalog catalog.Catalog) *ServiceImpl {
	return &ServiceImpl{repo: repo, ledger: ledger, transactor: transactor, catalog: catalog}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Account, error) {
	if user.IsGuest(ctx) {
		accounts := make([]Account, 0, len(s.catalog.Accounts))
		for _, defaultAccount := range s.catalog.Accounts {
			accounts = append(accounts, Account{
				Name:          defaultAccount.Name,
				Icon:          defaultAccount.Icon,
				InitialAmount: decimal.Zero,
				Balance:       decimal.Zero,
			})
		}
		return accounts, nil
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.getOwned(ctx, userId, id)
}

func (s *ServiceImpl) getOwned(ctx context.Context, userId int, id int) (Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if account.UserId != userId {
		return Account{}, apperrors.NotOwned("account", id)
	}
	return account, nil
}

func (s *ServiceImpl) Create(ctx context.Context, account Account) (Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("failed to get current user: %w", err)
	}
	account.UserId = userId
	account.Name = strings.TrimSpace(account.Name)
	if err := validate(account); err != nil {
		return Account{}, err
	}

	var created Account
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.repo.Create(ctx, account)
		if err != nil {
			return err
		}
		created.Balance, err = s.ledger.RecalculateBalance(ctx, created.Id)
		return err
	})
	if err != nil {
		return Account{}, err
	}
	log.Debugf("created account %d for user %d", created.Id, userId)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, account Account) (Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("failed to get current user: %w", err)
	}
	account.UserId = userId
	account.Name = strings.TrimSpace(account.Name)
	if err := validate(account); err != nil {
		return Account{}, err
	}

	var updated Account
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.getOwned(ctx, userId, account.Id); err != nil {
			return err
		}
		updated, err = s.repo.Update(ctx, account)
		if err != nil {
			return err
		}
		updated.Balance, err = s.ledger.RecalculateBalance(ctx, updated.Id)
		return err
	})
	if err != nil {
		return Account{}, err
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.getOwned(ctx, userId, id); err != nil {
			return err
		}
		deleted, err := s.repo.Delete(ctx, userId, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrAccountNotFound
		}
		return nil
	})
}

func (s *ServiceImpl) Recalculate(ctx context.Context, id int) (Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("failed to get current user: %w", err)
	}
	var account Account
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.ledger.RecalculateBalance(ctx, id)
		if err != nil {
			return err
		}
		account, err = s.getOwned(ctx, userId, id)
		account.Balance = balance
		return err
	})
	if err != nil {
		return Account{}, err
	}
	return account, nil
}

func validate(account Account) error {
	validationErr := &apperrors.ValidationError{}
	catalog.ValidateName(validationErr, "name", account.Name)
	catalog.ValidateIcon(validationErr, "icon", account.Icon)
	ledger.ValidateMoney(validationErr, "initialAmount", account.InitialAmount)
	return validationErr.OrNil()
}
