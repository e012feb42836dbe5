package budget

import (
	"context"
	"sort"
	"time"
)

type StubBudgetRepo struct {
	nextId int
	data   map[int]Budget
	clock  func() time.Time
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{nextId: 0, data: map[int]Budget{}, clock: time.Now}
}

func (s *StubBudgetRepo) Upsert(ctx context.Context, budget Budget) (Budget, error) {
	for id, existing := range s.data {
		if existing.UserId == budget.UserId && existing.CategoryId == budget.CategoryId &&
			existing.Month == budget.Month && existing.Year == budget.Year {
			existing.Amount = budget.Amount
			s.data[id] = existing
			return existing, nil
		}
	}
	s.nextId++
	budget.ID = s.nextId
	budget.CreatedAt = s.clock()
	s.data[budget.ID] = budget
	return budget, nil
}

func (s *StubBudgetRepo) Get(ctx context.Context, id int) (Budget, error) {
	budget, ok := s.data[id]
	if !ok {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) Find(ctx context.Context, userId int, categoryId int, month time.Month, year int) (Budget, bool, error) {
	for _, budget := range s.data {
		if budget.UserId == userId && budget.CategoryId == categoryId && budget.Month == month && budget.Year == year {
			return budget, true, nil
		}
	}
	return Budget{}, false, nil
}

func (s *StubBudgetRepo) GetAllForMonth(ctx context.Context, userId int, month time.Month, year int) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.data))
	for _, budget := range s.data {
		if budget.UserId == userId && budget.Month == month && budget.Year == year {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].CategoryId < budgets[j].CategoryId })
	return budgets, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	budget, ok := s.data[budgetId]
	if !ok || budget.UserId != userId {
		return false, nil
	}
	delete(s.data, budgetId)
	return true, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Budget{}
}
