package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/pkg/catalog"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/budgetbee/budgetbee/pkg/user"
)

const (
	defaultColor = "#FFA500"
	defaultIcon  = "📁"
)

type Service interface {
	// List returns the user's categories of the given type, or the catalog's default categories for a guest.
	List(ctx context.Context, entryType ledger.EntryType) ([]Category, error)
	// Get returns the category when it belongs to the current user.
	Get(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	// Update changes name, color, icon and default budget. The type of a category is fixed.
	Update(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo       Repository
	transactor database.Transactor
	catalog    catalog.Catalog
}

func NewService(repo Repository, transactor database.Transactor, catalog catalog.Catalog) *ServiceImpl {
	return &ServiceImpl{repo: repo, transactor: transactor, catalog: catalog}
}

func (s *ServiceImpl) List(ctx context.Context, entryType ledger.EntryType) ([]Category, error) {
	if entryType != "" && !entryType.Valid() {
		return nil, apperrors.NewValidationError("type", "must be income or expense")
	}
	if user.IsGuest(ctx) {
		defaults := s.catalog.CategoriesOf(entryType)
		categories := make([]Category, 0, len(defaults))
		for _, c := range defaults {
			categories = append(categories, Category{Name: c.Name, Type: c.Type, Color: c.Color, Icon: c.Icon})
		}
		return categories, nil
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId, entryType)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	category, err := s.repo.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if category.UserId != userId {
		return Category{}, apperrors.NotOwned("category", id)
	}
	return category, nil
}

func (s *ServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	category.UserId = userId
	normalize(&category)
	if err := validate(category); err != nil {
		return Category{}, err
	}
	return s.repo.Create(ctx, category)
}

func (s *ServiceImpl) Update(ctx context.Context, category Category) (Category, error) {
	var updated Category
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		stored, err := s.Get(ctx, category.Id)
		if err != nil {
			return err
		}
		if category.Type == "" {
			category.Type = stored.Type
		}
		if category.Type != stored.Type {
			return apperrors.NewValidationError("type", "cannot be changed")
		}
		category.UserId = stored.UserId
		normalize(&category)
		if err := validate(category); err != nil {
			return err
		}
		updated, err = s.repo.Update(ctx, category)
		return err
	})
	if err != nil {
		return Category{}, err
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		stored, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		deleted, err := s.repo.Delete(ctx, stored.UserId, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}
		return nil
	})
}

func normalize(category *Category) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Color == "" {
		category.Color = defaultColor
	}
	if category.Icon == "" {
		category.Icon = defaultIcon
	}
}

func validate(category Category) error {
	validationErr := &apperrors.ValidationError{}
	catalog.ValidateName(validationErr, "name", category.Name)
	catalog.ValidateIcon(validationErr, "icon", category.Icon)
	if !category.Type.Valid() {
		validationErr.Add("type", "must be income or expense")
	}
	if !catalog.IsColor(category.Color) {
		validationErr.Add("color", "must be a hex color like #FFA500")
	}
	if category.DefaultBudget != nil {
		if category.Type == ledger.Income {
			validationErr.Add("defaultBudget", "is only allowed for expense categories")
		} else {
			ledger.ValidateAmount(validationErr, "defaultBudget", *category.DefaultBudget)
		}
	}
	return validationErr.OrNil()
}
