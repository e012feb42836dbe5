package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StubEntry is a transaction as seen by the in-memory ledger.
type StubEntry struct {
	Id         int
	UserId     int
	AccountId  int
	CategoryId int
	Type       EntryType
	Amount     decimal.Decimal
	Date       time.Time
}

// RepositoryStub keeps accounts and transactions in memory. Account, transaction and budget stubs build on
// it so that their services see consistent balances.
type RepositoryStub struct {
	Accounts map[int]AccountState
	Entries  map[int]StubEntry
	// Reads counts every read of stored data.
	Reads int
	// SaveErr, when set, is returned by SaveBalance.
	SaveErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{Accounts: map[int]AccountState{}, Entries: map[int]StubEntry{}}
}

func (s *RepositoryStub) Cleanup() {
	s.Accounts = map[int]AccountState{}
	s.Entries = map[int]StubEntry{}
	s.Reads = 0
	s.SaveErr = nil
}

func (s *RepositoryStub) GetAccountForUpdate(ctx context.Context, accountId int) (AccountState, error) {
	s.Reads++
	account, ok := s.Accounts[accountId]
	if !ok {
		return AccountState{}, ErrAccountNotFound
	}
	return account, nil
}

func (s *RepositoryStub) Sum(ctx context.Context, filter Filter) (decimal.Decimal, error) {
	s.Reads++
	sum := decimal.Zero
	for _, entry := range s.Entries {
		if matches(entry, filter) {
			sum = sum.Add(entry.Amount)
		}
	}
	return sum, nil
}

// Matching returns the entries selected by filter ordered by date, newest first, then by id.
func (s *RepositoryStub) Matching(filter Filter) []StubEntry {
	s.Reads++
	var entries []StubEntry
	for _, entry := range s.Entries {
		if matches(entry, filter) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].Id > entries[j].Id
	})
	return entries
}

func matches(entry StubEntry, filter Filter) bool {
	switch {
	case filter.UserId != 0 && entry.UserId != filter.UserId:
		return false
	case filter.AccountId != 0 && entry.AccountId != filter.AccountId:
		return false
	case filter.CategoryId != 0 && entry.CategoryId != filter.CategoryId:
		return false
	case filter.Type != "" && entry.Type != filter.Type:
		return false
	case !filter.From.IsZero() && entry.Date.Before(filter.From):
		return false
	case !filter.To.IsZero() && entry.Date.After(filter.To):
		return false
	}
	return true
}

func (s *RepositoryStub) SumByAccount(ctx context.Context, userId int) ([]AccountSums, error) {
	s.Reads++
	var sums []AccountSums
	for _, account := range s.Accounts {
		if account.UserId != userId {
			continue
		}
		accountSums := AccountSums{AccountId: account.Id, InitialAmount: account.InitialAmount, Income: decimal.Zero, Expense: decimal.Zero}
		for _, entry := range s.Entries {
			if entry.AccountId != account.Id {
				continue
			}
			if entry.Type == Income {
				accountSums.Income = accountSums.Income.Add(entry.Amount)
			} else {
				accountSums.Expense = accountSums.Expense.Add(entry.Amount)
			}
		}
		sums = append(sums, accountSums)
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].AccountId < sums[j].AccountId })
	return sums, nil
}

func (s *RepositoryStub) SaveBalance(ctx context.Context, accountId int, balance decimal.Decimal) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	account, ok := s.Accounts[accountId]
	if !ok {
		return ErrAccountNotFound
	}
	account.Balance = balance
	s.Accounts[accountId] = account
	return nil
}
