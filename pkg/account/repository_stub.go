package account

import (
	"context"
	"sort"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/pkg/ledger"
)

// RepositoryStub keeps account names and icons itself and the money part in the shared ledger stub.
type RepositoryStub struct {
	nextId   int
	accounts map[int]Account
	ledger   *ledger.RepositoryStub
}

func NewRepositoryStub(ledgerStub *ledger.RepositoryStub) *RepositoryStub {
	return &RepositoryStub{nextId: 0, accounts: map[int]Account{}, ledger: ledgerStub}
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.accounts = map[int]Account{}
}

func (s *RepositoryStub) nameTaken(account Account) bool {
	for _, existing := range s.accounts {
		if existing.UserId == account.UserId && existing.Name == account.Name && existing.Id != account.Id {
			return true
		}
	}
	return false
}

func (s *RepositoryStub) Create(ctx context.Context, account Account) (Account, error) {
	if s.nameTaken(account) {
		return Account{}, apperrors.NewValidationError("name", "an account with this name already exists")
	}
	s.nextId++
	account.Id = s.nextId
	account.Balance = account.InitialAmount
	s.accounts[account.Id] = account
	s.ledger.Accounts[account.Id] = ledger.AccountState{
		Id:            account.Id,
		UserId:        account.UserId,
		InitialAmount: account.InitialAmount,
		Balance:       account.Balance,
	}
	return account, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id int) (Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	state := s.ledger.Accounts[id]
	account.InitialAmount = state.InitialAmount
	account.Balance = state.Balance
	return account, nil
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]Account, error) {
	accounts := make([]Account, 0, len(s.accounts))
	for id, account := range s.accounts {
		if account.UserId != userId {
			continue
		}
		account.Balance = s.ledger.Accounts[id].Balance
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Id < accounts[j].Id })
	return accounts, nil
}

func (s *RepositoryStub) Update(ctx context.Context, account Account) (Account, error) {
	stored, ok := s.accounts[account.Id]
	if !ok || stored.UserId != account.UserId {
		return Account{}, ErrAccountNotFound
	}
	if s.nameTaken(account) {
		return Account{}, apperrors.NewValidationError("name", "an account with this name already exists")
	}
	state := s.ledger.Accounts[account.Id]
	state.InitialAmount = account.InitialAmount
	s.ledger.Accounts[account.Id] = state

	stored.Name = account.Name
	stored.Icon = account.Icon
	stored.InitialAmount = account.InitialAmount
	stored.Balance = state.Balance
	s.accounts[account.Id] = stored
	return stored, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) (bool, error) {
	stored, ok := s.accounts[id]
	if !ok || stored.UserId != userId {
		return false, nil
	}
	delete(s.accounts, id)
	delete(s.ledger.Accounts, id)
	for entryId, entry := range s.ledger.Entries {
		if entry.AccountId == id {
			delete(s.ledger.Entries, entryId)
		}
	}
	return true, nil
}
