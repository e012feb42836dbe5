package category

import (
	"context"
	"sort"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/pkg/ledger"
)

type RepositoryStub struct {
	nextId     int
	categories map[int]Category
	// OnDelete is called after a category is removed, letting transaction stubs drop their references.
	OnDelete func(id int)
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{categories: map[int]Category{}}
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.categories = map[int]Category{}
}

func (s *RepositoryStub) Create(ctx context.Context, category Category) (Category, error) {
	for _, existing := range s.categories {
		if existing.UserId == category.UserId && existing.Name == category.Name && existing.Type == category.Type {
			return Category{}, apperrors.NewValidationError("name", "a category with this name and type already exists")
		}
	}
	s.nextId++
	category.Id = s.nextId
	s.categories[category.Id] = category
	return category, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id int) (Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *RepositoryStub) List(ctx context.Context, userId int, entryType ledger.EntryType) ([]Category, error) {
	categories := make([]Category, 0, len(s.categories))
	for _, category := range s.categories {
		if category.UserId == userId && (entryType == "" || category.Type == entryType) {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Id < categories[j].Id })
	return categories, nil
}

func (s *RepositoryStub) Update(ctx context.Context, category Category) (Category, error) {
	stored, ok := s.categories[category.Id]
	if !ok || stored.UserId != category.UserId {
		return Category{}, ErrCategoryNotFound
	}
	s.categories[category.Id] = category
	return category, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) (bool, error) {
	stored, ok := s.categories[id]
	if !ok || stored.UserId != userId {
		return false, nil
	}
	delete(s.categories, id)
	if s.OnDelete != nil {
		s.OnDelete(id)
	}
	return true, nil
}
