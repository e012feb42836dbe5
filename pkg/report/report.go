package report

import (
	"time"

	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/shopspring/decimal"
)

const (
	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#DDDDDD"
	// MonthLabelLayout renders months as "Jan 2006".
	MonthLabelLayout = "Jan 2006"
)

type CategoryAmount struct {
	Name   string
	Color  string
	Amount decimal.Decimal
}

type MonthlyTotals struct {
	// Month is the first day of the month.
	Month   time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (m MonthlyTotals) Balance() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// Chart holds everything the charts page draws for a date range.
type Chart struct {
	From    time.Time
	To      time.Time
	Income  []CategoryAmount
	Expense []CategoryAmount
	Monthly []MonthlyTotals
	// CategoryColors maps the type and then the name of every category of the user to its color.
	// Income and expense categories may share a name.
	CategoryColors map[ledger.EntryType]map[string]string
}
