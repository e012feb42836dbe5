package report

import (
	"context"
	"sort"
	"time"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/pkg/category"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/budgetbee/budgetbee/pkg/transaction"
	"github.com/budgetbee/budgetbee/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ReportService interface {
	// GetChart aggregates the current user's transactions between from and to. Zero dates leave the range open.
	// A guest gets an empty chart.
	GetChart(ctx context.Context, from time.Time, to time.Time) (Chart, error)
}

type TransactionLister interface {
	List(ctx context.Context, filter ledger.Filter) ([]transaction.Transaction, error)
}

type CategoryLister interface {
	List(ctx context.Context, entryType ledger.EntryType) ([]category.Category, error)
}

type ReportServiceImpl struct {
	transactions TransactionLister
	categories   CategoryLister
}

func NewReportServiceImpl(transactions TransactionLister, categories CategoryLister) *ReportServiceImpl {
	return &ReportServiceImpl{transactions: transactions, categories: categories}
}

func (s *ReportServiceImpl) GetChart(ctx context.Context, from time.Time, to time.Time) (Chart, error) {
	chart := Chart{
		From:           from,
		To:             to,
		Income:         []CategoryAmount{},
		Expense:        []CategoryAmount{},
		Monthly:        []MonthlyTotals{},
		CategoryColors: map[ledger.EntryType]map[string]string{ledger.Income: {}, ledger.Expense: {}},
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return Chart{}, apperrors.NewValidationError("from", "must not be after to")
	}
	if user.IsGuest(ctx) {
		return chart, nil
	}

	categories, err := s.categories.List(ctx, "")
	if err != nil {
		return Chart{}, err
	}
	byId := make(map[int]category.Category, len(categories))
	for _, c := range categories {
		byId[c.Id] = c
		if colors, ok := chart.CategoryColors[c.Type]; ok {
			colors[c.Name] = c.Color
		}
	}

	transactions, err := s.transactions.List(ctx, ledger.Filter{From: from, To: to})
	if err != nil {
		return Chart{}, err
	}
	log.Tracef("Building chart from %d transactions", len(transactions))

	income := map[string]*CategoryAmount{}
	expense := map[string]*CategoryAmount{}
	monthly := map[time.Time]*MonthlyTotals{}
	for _, t := range transactions {
		name, color := UncategorizedName, UncategorizedColor
		if c, ok := byId[t.CategoryId]; ok {
			name, color = c.Name, c.Color
		}
		month := time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals, ok := monthly[month]
		if !ok {
			totals = &MonthlyTotals{Month: month, Income: decimal.Zero, Expense: decimal.Zero}
			monthly[month] = totals
		}

		target := expense
		if t.Type == ledger.Income {
			target = income
			totals.Income = totals.Income.Add(t.Amount)
		} else {
			totals.Expense = totals.Expense.Add(t.Amount)
		}
		amount, ok := target[name]
		if !ok {
			amount = &CategoryAmount{Name: name, Color: color, Amount: decimal.Zero}
			target[name] = amount
		}
		amount.Amount = amount.Amount.Add(t.Amount)
	}

	chart.Income = sortedAmounts(income)
	chart.Expense = sortedAmounts(expense)
	for _, totals := range monthly {
		chart.Monthly = append(chart.Monthly, *totals)
	}
	sort.Slice(chart.Monthly, func(i, j int) bool { return chart.Monthly[i].Month.Before(chart.Monthly[j].Month) })
	addUncategorizedColor(chart.CategoryColors[ledger.Income], income)
	addUncategorizedColor(chart.CategoryColors[ledger.Expense], expense)
	return chart, nil
}

// addUncategorizedColor keeps a user category called "Uncategorized" in charge of its own color.
func addUncategorizedColor(colors map[string]string, amounts map[string]*CategoryAmount) {
	if _, used := amounts[UncategorizedName]; !used {
		return
	}
	if _, taken := colors[UncategorizedName]; !taken {
		colors[UncategorizedName] = UncategorizedColor
	}
}

// sortedAmounts orders by amount, largest first, then by name.
func sortedAmounts(amounts map[string]*CategoryAmount) []CategoryAmount {
	result := make([]CategoryAmount, 0, len(amounts))
	for _, a := range amounts {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Amount.Equal(result[j].Amount) {
			return result[i].Amount.GreaterThan(result[j].Amount)
		}
		return result[i].Name < result[j].Name
	})
	return result
}
