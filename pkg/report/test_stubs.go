package report

import (
	"context"
	"errors"

	"github.com/budgetbee/budgetbee/pkg/category"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/budgetbee/budgetbee/pkg/transaction"
)

type transactionListerStub struct {
	transactions []transaction.Transaction
	lastFilter   ledger.Filter
}

func newTransactionListerStub() *transactionListerStub {
	return &transactionListerStub{}
}

func (s *transactionListerStub) List(ctx context.Context, filter ledger.Filter) ([]transaction.Transaction, error) {
	s.lastFilter = filter
	var result []transaction.Transaction
	for _, t := range s.transactions {
		if !filter.From.IsZero() && t.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && t.Date.After(filter.To) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (s *transactionListerStub) reset() {
	s.transactions = nil
	s.lastFilter = ledger.Filter{}
}

type categoryListerStub struct {
	categories []category.Category
	err        error
}

func newCategoryListerStub() *categoryListerStub {
	return &categoryListerStub{}
}

func (s *categoryListerStub) List(ctx context.Context, entryType ledger.EntryType) ([]category.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.categories, nil
}

func (s *categoryListerStub) reset() {
	s.categories = nil
	s.err = nil
}

var errStub = errors.New("stub failure")
