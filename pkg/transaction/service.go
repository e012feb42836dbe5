package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/internal/utils"
	"github.com/budgetbee/budgetbee/pkg/account"
	"github.com/budgetbee/budgetbee/pkg/category"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/budgetbee/budgetbee/pkg/user"
	log "github.com/sirupsen/logrus"
)

const maxNoteLength = 255

type Service interface {
	// List returns the current user's transactions selected by filter. A guest has none.
	List(ctx context.Context, filter ledger.Filter) ([]Transaction, error)
	// Daily groups the transactions between from and to per date, newest first.
	Daily(ctx context.Context, from, to time.Time) ([]Day, error)
	Get(ctx context.Context, id int) (Transaction, error)
	// Create stores the transaction, recomputes its account and returns the user's fresh totals.
	Create(ctx context.Context, transaction Transaction) (Transaction, ledger.Totals, error)
	// Update recomputes the previous account and, when the transaction moved, the new one.
	Update(ctx context.Context, transaction Transaction) (Transaction, ledger.Totals, error)
	Delete(ctx context.Context, id int) (ledger.Totals, error)
}

// AccountReader returns an account when it belongs to the current user.
type AccountReader interface {
	Get(ctx context.Context, id int) (account.Account, error)
}

// CategoryReader returns a category when it belongs to the current user.
type CategoryReader interface {
	Get(ctx context.Context, id int) (category.Category, error)
}

type ServiceImpl struct {
	repo       Repository
	ledger     ledger.Engine
	accounts   AccountReader
	categories CategoryReader
	transactor database.Transactor
	clock      utils.Clock
}

func NewService(repo Repository, ledger ledger.Engine, accounts AccountReader, categories CategoryReader,
	transactor database.Transactor, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		ledger:     ledger,
		accounts:   accounts,
		categories: categories,
		transactor: transactor,
		clock:      clock,
	}
}

func (s *ServiceImpl) List(ctx context.Context, filter ledger.Filter) ([]Transaction, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, apperrors.NewValidationError("type", "must be income or expense")
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return nil, apperrors.NewValidationError("from", "must not be after to")
	}
	if user.IsGuest(ctx) {
		return []Transaction{}, nil
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	filter.UserId = userId
	return s.repo.List(ctx, filter)
}

func (s *ServiceImpl) Daily(ctx context.Context, from, to time.Time) ([]Day, error) {
	transactions, err := s.List(ctx, ledger.Filter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return GroupByDay(transactions), nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.getOwned(ctx, userId, id)
}

func (s *ServiceImpl) getOwned(ctx context.Context, userId int, id int) (Transaction, error) {
	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	if transaction.UserId != userId {
		return Transaction{}, apperrors.NotOwned("transaction", id)
	}
	return transaction, nil
}

func (s *ServiceImpl) Create(ctx context.Context, transaction Transaction) (Transaction, ledger.Totals, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, ledger.Totals{}, fmt.Errorf("failed to get current user: %w", err)
	}
	transaction.UserId = userId
	normalize(&transaction)
	if transaction.Date.IsZero() {
		transaction.Date = utils.Today(s.clock)
	}
	if err := validate(transaction); err != nil {
		return Transaction{}, ledger.Totals{}, err
	}

	var created Transaction
	var totals ledger.Totals
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, transaction); err != nil {
			return err
		}
		created, err = s.repo.Create(ctx, transaction)
		if err != nil {
			return err
		}
		if _, err := s.ledger.RecalculateBalance(ctx, created.AccountId); err != nil {
			return err
		}
		totals, err = s.ledger.ComputeTotals(ctx)
		return err
	})
	if err != nil {
		return Transaction{}, ledger.Totals{}, err
	}
	log.Debugf("created transaction %d on account %d", created.Id, created.AccountId)
	return created, totals, nil
}

func (s *ServiceImpl) Update(ctx context.Context, transaction Transaction) (Transaction, ledger.Totals, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, ledger.Totals{}, fmt.Errorf("failed to get current user: %w", err)
	}
	transaction.UserId = userId
	normalize(&transaction)
	if err := validate(transaction); err != nil {
		return Transaction{}, ledger.Totals{}, err
	}

	var updated Transaction
	var totals ledger.Totals
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		stored, err := s.getOwned(ctx, userId, transaction.Id)
		if err != nil {
			return err
		}
		if transaction.Date.IsZero() {
			transaction.Date = stored.Date
		}
		if err := s.checkReferences(ctx, transaction); err != nil {
			return err
		}
		updated, err = s.repo.Update(ctx, transaction)
		if err != nil {
			return err
		}
		if _, err := s.ledger.RecalculateBalance(ctx, stored.AccountId); err != nil {
			return err
		}
		if updated.AccountId != stored.AccountId {
			log.Debugf("transaction %d moved from account %d to %d", updated.Id, stored.AccountId, updated.AccountId)
			if _, err := s.ledger.RecalculateBalance(ctx, updated.AccountId); err != nil {
				return err
			}
		}
		totals, err = s.ledger.ComputeTotals(ctx)
		return err
	})
	if err != nil {
		return Transaction{}, ledger.Totals{}, err
	}
	return updated, totals, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (ledger.Totals, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ledger.Totals{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var totals ledger.Totals
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		stored, err := s.getOwned(ctx, userId, id)
		if err != nil {
			return err
		}
		deleted, err := s.repo.Delete(ctx, userId, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrTransactionNotFound
		}
		if _, err := s.ledger.RecalculateBalance(ctx, stored.AccountId); err != nil {
			return err
		}
		totals, err = s.ledger.ComputeTotals(ctx)
		return err
	})
	if err != nil {
		return ledger.Totals{}, err
	}
	return totals, nil
}

// checkReferences verifies that the account and the category belong to the user and that the category
// has the type of the transaction.
func (s *ServiceImpl) checkReferences(ctx context.Context, transaction Transaction) error {
	if _, err := s.accounts.Get(ctx, transaction.AccountId); err != nil {
		return err
	}
	if transaction.CategoryId == 0 {
		return nil
	}
	c, err := s.categories.Get(ctx, transaction.CategoryId)
	if err != nil {
		return err
	}
	if c.Type != transaction.Type {
		return apperrors.NewValidationError("categoryId", fmt.Sprintf("must be a category of type %s", transaction.Type))
	}
	return nil
}

// normalize leaves a missing date zero. Create fills in today, Update keeps the stored date.
func normalize(transaction *Transaction) {
	transaction.Note = strings.TrimSpace(transaction.Note)
	if !transaction.Date.IsZero() {
		transaction.Date = utils.DateOf(transaction.Date)
	}
}

func validate(transaction Transaction) error {
	validationErr := &apperrors.ValidationError{}
	if transaction.AccountId <= 0 {
		validationErr.Add("accountId", "is required")
	}
	if transaction.CategoryId < 0 {
		validationErr.Add("categoryId", "is invalid")
	}
	if !transaction.Type.Valid() {
		validationErr.Add("type", "must be income or expense")
	}
	ledger.ValidateAmount(validationErr, "amount", transaction.Amount)
	if utf8.RuneCountInString(transaction.Note) > maxNoteLength {
		validationErr.Add("note", fmt.Sprintf("must be at most %d characters", maxNoteLength))
	}
	return validationErr.OrNil()
}
