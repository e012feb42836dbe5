package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/utils"
	"github.com/budgetbee/budgetbee/pkg/category"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/budgetbee/budgetbee/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	minYear = 1900
	maxYear = 9999
)

type BudgetService interface {
	// Status compares the expenses of the category in the month with its budget.
	Status(ctx context.Context, categoryId int, month time.Month, year int) (Status, error)
	// SetBudget creates or replaces the budget of an expense category for the month.
	SetBudget(ctx context.Context, categoryId int, month time.Month, year int, amount decimal.Decimal) (Budget, error)
	// ListMonth returns the status of every expense category of the user for the month.
	ListMonth(ctx context.Context, month time.Month, year int) ([]CategoryStatus, error)
	Delete(ctx context.Context, id int) error
}

type CategoryReader interface {
	Get(ctx context.Context, id int) (category.Category, error)
	List(ctx context.Context, entryType ledger.EntryType) ([]category.Category, error)
}

type BudgetServiceImpl struct {
	repo       BudgetRepo
	ledger     ledger.Engine
	categories CategoryReader
}

func NewBudgetServiceImpl(repo BudgetRepo, ledger ledger.Engine, categories CategoryReader) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, ledger: ledger, categories: categories}
}

func (s *BudgetServiceImpl) Status(ctx context.Context, categoryId int, month time.Month, year int) (Status, error) {
	if err := validatePeriod(month, year); err != nil {
		return Status{}, err
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.categories.Get(ctx, categoryId); err != nil {
		return Status{}, err
	}

	ceiling := decimal.Zero
	budget, found, err := s.repo.Find(ctx, userId, categoryId, month, year)
	if err != nil {
		return Status{}, err
	}
	if found {
		ceiling = budget.Amount
	}
	spent, err := s.spent(ctx, categoryId, month, year)
	if err != nil {
		return Status{}, err
	}
	return ComputeStatus(spent, ceiling), nil
}

func (s *BudgetServiceImpl) spent(ctx context.Context, categoryId int, month time.Month, year int) (decimal.Decimal, error) {
	first, last := utils.MonthRange(month, year)
	return s.ledger.Sum(ctx, ledger.Filter{CategoryId: categoryId, Type: ledger.Expense, From: first, To: last})
}

func (s *BudgetServiceImpl) SetBudget(ctx context.Context, categoryId int, month time.Month, year int, amount decimal.Decimal) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	validationErr := &apperrors.ValidationError{}
	addPeriodErrors(validationErr, month, year)
	ledger.ValidateAmount(validationErr, "amount", amount)
	if categoryId <= 0 {
		validationErr.Add("categoryId", "is required")
	}
	if err := validationErr.OrNil(); err != nil {
		return Budget{}, err
	}

	c, err := s.categories.Get(ctx, categoryId)
	if err != nil {
		return Budget{}, err
	}
	if c.Type != ledger.Expense {
		return Budget{}, apperrors.NewValidationError("categoryId", "budgets can only be set for expense categories")
	}

	budget, err := s.repo.Upsert(ctx, Budget{UserId: userId, CategoryId: categoryId, Month: month, Year: year, Amount: amount})
	if err != nil {
		return Budget{}, err
	}
	log.Debugf("budget of category %d for %d-%02d set to %s", categoryId, year, month, amount)
	return budget, nil
}

func (s *BudgetServiceImpl) ListMonth(ctx context.Context, month time.Month, year int) ([]CategoryStatus, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	categories, err := s.categories.List(ctx, ledger.Expense)
	if err != nil {
		return nil, err
	}
	budgets, err := s.repo.GetAllForMonth(ctx, userId, month, year)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[int]Budget, len(budgets))
	for _, b := range budgets {
		byCategory[b.CategoryId] = b
	}

	statuses := make([]CategoryStatus, 0, len(categories))
	for _, c := range categories {
		spent, err := s.spent(ctx, c.Id, month, year)
		if err != nil {
			return nil, err
		}
		line := CategoryStatus{Category: c}
		ceiling := decimal.Zero
		if b, ok := byCategory[c.Id]; ok {
			line.BudgetId = b.ID
			ceiling = b.Amount
		}
		line.Status = ComputeStatus(spent, ceiling)
		statuses = append(statuses, line)
	}
	return statuses, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	budget, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if budget.UserId != userId {
		return apperrors.NotOwned("budget", id)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return ErrBudgetNotFound
	}
	return nil
}

func validatePeriod(month time.Month, year int) error {
	validationErr := &apperrors.ValidationError{}
	addPeriodErrors(validationErr, month, year)
	return validationErr.OrNil()
}

func addPeriodErrors(validationErr *apperrors.ValidationError, month time.Month, year int) {
	if month < time.January || month > time.December {
		validationErr.Add("month", "must be between 1 and 12")
	}
	if year < minYear || year > maxYear {
		validationErr.Add("year", fmt.Sprintf("must be between %d and %d", minYear, maxYear))
	}
}
