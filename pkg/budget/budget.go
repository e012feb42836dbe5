package budget

import (
	"time"

	"github.com/budgetbee/budgetbee/pkg/category"
	"github.com/shopspring/decimal"
)

// Budget is the spending ceiling of one expense category for one calendar month.
type Budget struct {
	ID         int
	UserId     int
	CategoryId int
	Month      time.Month
	Year       int
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

type Status struct {
	Spent       decimal.Decimal
	Ceiling     decimal.Decimal
	PercentUsed decimal.Decimal
	Exceeded    bool
}

// CategoryStatus is the budget line of one expense category in a month overview.
type CategoryStatus struct {
	Category category.Category
	// BudgetId is 0 when no budget is set for the month.
	BudgetId int
	Status   Status
}

var hundred = decimal.NewFromInt(100)

// ComputeStatus derives the status from the spent amount and the ceiling. A ceiling of zero means no
// budget: nothing is used and nothing can be exceeded.
func ComputeStatus(spent, ceiling decimal.Decimal) Status {
	status := Status{Spent: spent, Ceiling: ceiling, PercentUsed: decimal.Zero}
	if !ceiling.IsPositive() {
		return status
	}
	percent := spent.Div(ceiling).Mul(hundred)
	if percent.GreaterThan(hundred) {
		percent = hundred
	}
	if percent.IsNegative() {
		percent = decimal.Zero
	}
	status.PercentUsed = percent.Round(2)
	status.Exceeded = spent.GreaterThanOrEqual(ceiling)
	return status
}
