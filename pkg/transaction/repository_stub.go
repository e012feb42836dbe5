package transaction

import (
	"context"

	"github.com/budgetbee/budgetbee/pkg/ledger"
)

// RepositoryStub stores the money part of transactions in the shared ledger stub, so that the ledger engine
// and the account stub see them. Notes are kept aside.
type RepositoryStub struct {
	nextId int
	notes  map[int]string
	ledger *ledger.RepositoryStub
}

func NewRepositoryStub(ledgerStub *ledger.RepositoryStub) *RepositoryStub {
	return &RepositoryStub{notes: map[int]string{}, ledger: ledgerStub}
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.notes = map[int]string{}
}

// ClearCategory mirrors ON DELETE SET NULL. Hook it to the category stub's OnDelete.
func (s *RepositoryStub) ClearCategory(categoryId int) {
	for id, entry := range s.ledger.Entries {
		if entry.CategoryId == categoryId {
			entry.CategoryId = 0
			s.ledger.Entries[id] = entry
		}
	}
}

func (s *RepositoryStub) Create(ctx context.Context, transaction Transaction) (Transaction, error) {
	s.nextId++
	transaction.Id = s.nextId
	s.store(transaction)
	return transaction, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id int) (Transaction, error) {
	entry, ok := s.ledger.Entries[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return s.fromEntry(entry), nil
}

func (s *RepositoryStub) List(ctx context.Context, filter ledger.Filter) ([]Transaction, error) {
	entries := s.ledger.Matching(filter)
	transactions := make([]Transaction, 0, len(entries))
	for _, entry := range entries {
		transactions = append(transactions, s.fromEntry(entry))
	}
	return transactions, nil
}

func (s *RepositoryStub) Update(ctx context.Context, transaction Transaction) (Transaction, error) {
	stored, ok := s.ledger.Entries[transaction.Id]
	if !ok || stored.UserId != transaction.UserId {
		return Transaction{}, ErrTransactionNotFound
	}
	s.store(transaction)
	return transaction, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) (bool, error) {
	stored, ok := s.ledger.Entries[id]
	if !ok || stored.UserId != userId {
		return false, nil
	}
	delete(s.ledger.Entries, id)
	delete(s.notes, id)
	return true, nil
}

func (s *RepositoryStub) store(transaction Transaction) {
	s.ledger.Entries[transaction.Id] = ledger.StubEntry{
		Id:         transaction.Id,
		UserId:     transaction.UserId,
		AccountId:  transaction.AccountId,
		CategoryId: transaction.CategoryId,
		Type:       transaction.Type,
		Amount:     transaction.Amount,
		Date:       transaction.Date,
	}
	s.notes[transaction.Id] = transaction.Note
}

func (s *RepositoryStub) fromEntry(entry ledger.StubEntry) Transaction {
	return Transaction{
		Id:         entry.Id,
		UserId:     entry.UserId,
		AccountId:  entry.AccountId,
		CategoryId: entry.CategoryId,
		Amount:     entry.Amount,
		Type:       entry.Type,
		Note:       s.notes[entry.Id],
		Date:       entry.Date,
	}
}
