package transaction

import (
	"time"

	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	Id        int
	UserId    int
	AccountId int
	// CategoryId is 0 for an uncategorized transaction, including one whose category was deleted.
	CategoryId int
	Amount     decimal.Decimal
	Type       ledger.EntryType
	Note       string
	Date       time.Time
}

// Day groups the transactions of one calendar date with the date's income and expense.
type Day struct {
	Date         time.Time
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Transactions []Transaction
}

// GroupByDay keeps the order of transactions, which must already be sorted by date.
func GroupByDay(transactions []Transaction) []Day {
	days := make([]Day, 0)
	for _, t := range transactions {
		if len(days) == 0 || !days[len(days)-1].Date.Equal(t.Date) {
			days = append(days, Day{Date: t.Date, Income: decimal.Zero, Expense: decimal.Zero})
		}
		day := &days[len(days)-1]
		day.Transactions = append(day.Transactions, t)
		if t.Type == ledger.Income {
			day.Income = day.Income.Add(t.Amount)
		} else {
			day.Expense = day.Expense.Add(t.Amount)
		}
	}
	return days
}
