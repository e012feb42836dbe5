package ledger

import (
	"fmt"
	"time"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType tells whether a transaction adds to or subtracts from its account.
type EntryType string

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

func (t EntryType) Valid() bool {
	return t == Income || t == Expense
}

func ParseEntryType(value string) (EntryType, error) {
	t := EntryType(value)
	if !t.Valid() {
		return "", fmt.Errorf("unknown entry type %q", value)
	}
	return t, nil
}

// Filter narrows the transactions summed by the aggregation query. Zero-valued fields do not filter.
// From and To are inclusive calendar dates.
type Filter struct {
	UserId     int
	AccountId  int
	CategoryId int
	Type       EntryType
	From       time.Time
	To         time.Time
}

type Totals struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalBalance decimal.Decimal
}

// EarningPercent is the share of income in the whole money flow, rounded to an integer.
func (t Totals) EarningPercent() int64 {
	return share(t.TotalIncome, t.TotalIncome.Add(t.TotalExpense))
}

// SpentPercent is the share of expense in the whole money flow, rounded to an integer.
func (t Totals) SpentPercent() int64 {
	return share(t.TotalExpense, t.TotalIncome.Add(t.TotalExpense))
}

func share(part, whole decimal.Decimal) int64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(decimal.NewFromInt(100)).Div(whole).Round(0).IntPart()
}

// AccountState is the part of an account the ledger needs to recompute its balance.
type AccountState struct {
	Id            int
	UserId        int
	InitialAmount decimal.Decimal
	Balance       decimal.Decimal
}

// AccountSums holds the aggregated flows of one account.
type AccountSums struct {
	AccountId     int
	InitialAmount decimal.Decimal
	Income        decimal.Decimal
	Expense       decimal.Decimal
}

func (s AccountSums) Balance() decimal.Decimal {
	return s.InitialAmount.Add(s.Income).Sub(s.Expense)
}

var (
	maxAmount = decimal.New(1, 8)
	maxMoney  = decimal.New(1, 10)
)

// ValidateAmount checks a transaction or budget amount: strictly positive, at most two decimal
// places, below 100 000 000.
func ValidateAmount(validationErr *apperrors.ValidationError, field string, amount decimal.Decimal) {
	switch {
	case !amount.IsPositive():
		validationErr.Add(field, "must be greater than zero")
	case !amount.Equal(amount.Round(2)):
		validationErr.Add(field, "must have at most two decimal places")
	case amount.GreaterThanOrEqual(maxAmount):
		validationErr.Add(field, "is too large")
	}
}

// ValidateMoney checks a signed monetary value such as an opening balance.
func ValidateMoney(validationErr *apperrors.ValidationError, field string, amount decimal.Decimal) {
	switch {
	case !amount.Equal(amount.Round(2)):
		validationErr.Add(field, "must have at most two decimal places")
	case amount.Abs().GreaterThanOrEqual(maxMoney):
		validationErr.Add(field, "is too large")
	}
}
