package category

import (
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/shopspring/decimal"
)

type Category struct {
	Id     int
	UserId int
	Name   string
	Type   ledger.EntryType
	Color  string
	Icon   string
	// DefaultBudget is a suggested monthly ceiling shown when no budget is set. Nil when not configured.
	DefaultBudget *decimal.Decimal
}
