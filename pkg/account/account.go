package account

import "github.com/shopspring/decimal"

type Account struct {
	Id     int
	UserId int
	Name   string
	Icon   string
	// InitialAmount is the opening balance. Balance is derived from it and the account's transactions.
	InitialAmount decimal.Decimal
	Balance       decimal.Decimal
}
