package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/internal/utils"
	"github.com/budgetbee/budgetbee/pkg/account"
	"github.com/budgetbee/budgetbee/pkg/catalog"
	"github.com/budgetbee/budgetbee/pkg/category"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/budgetbee/budgetbee/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})
var otherUserCtx = user.WithUser(context.Background(), user.User{Id: 2})

var ledgerStub = ledger.NewRepositoryStub()
var accountRepo = account.NewRepositoryStub(ledgerStub)
var categoryRepo = category.NewRepositoryStub()
var repoStub = NewRepositoryStub(ledgerStub)

var clock = &utils.MockClock{FixedNow: time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)}

var accounts *account.ServiceImpl
var categories *category.ServiceImpl
var service Service

func setup(t *testing.T) func() {
	transactor := database.NoTransactor{}
	engine := ledger.NewEngine(ledgerStub, transactor)
	accounts = account.NewService(accountRepo, engine, transactor, catalog.Default())
	categories = category.NewService(categoryRepo, transactor, catalog.Default())
	categoryRepo.OnDelete = repoStub.ClearCategory
	service = NewService(repoStub, engine, accounts, categories, transactor, clock)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		categoryRepo.Cleanup()
		accountRepo.Cleanup()
		ledgerStub.Cleanup()
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func createAccount(t *testing.T, ctx context.Context, name string, initial string) int {
	t.Helper()
	created, err := accounts.Create(ctx, account.Account{Name: name, InitialAmount: decimal.RequireFromString(initial)})
	require.NoError(t, err)
	return created.Id
}

func balanceOf(t *testing.T, accountId int) decimal.Decimal {
	t.Helper()
	a, err := accounts.Get(ctx, accountId)
	require.NoError(t, err)
	return a.Balance
}

func newTransaction(accountId int, entryType ledger.EntryType, amount string) Transaction {
	return Transaction{
		AccountId: accountId,
		Type:      entryType,
		Amount:    decimal.RequireFromString(amount),
		Date:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should recalculate account and return totals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "100")

		// when
		created, totals, err := service.Create(ctx, newTransaction(accountId, ledger.Expense, "30"))

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assertDecimal(t, "70", balanceOf(t, accountId))
		assertDecimal(t, "0", totals.TotalIncome)
		assertDecimal(t, "30", totals.TotalExpense)
		assertDecimal(t, "70", totals.TotalBalance)
	})

	t.Run("should default date to today", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		accountId := createAccount(t, ctx, "Bank", "0")
		transaction := newTransaction(accountId, ledger.Income, "10")
		transaction.Date = time.Time{}

		created, _, err := service.Create(ctx, transaction)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), created.Date)
	})

	t.Run("should reject non positive amounts without recalculation", func(t *testing.T) {
		for _, amount := range []string{"0", "-5", "0.001"} {
			t.Run(amount, func(t *testing.T) {
				teardown := setup(t)
				defer teardown()

				// given
				accountId := createAccount(t, ctx, "Bank", "100")
				readsBefore := ledgerStub.Reads

				// when
				_, _, err := service.Create(ctx, newTransaction(accountId, ledger.Expense, amount))

				// then
				var validationErr *apperrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "amount", validationErr.Fields[0].Field)
				assert.Equal(t, readsBefore, ledgerStub.Reads)
				assert.Empty(t, ledgerStub.Entries)
				assertDecimal(t, "100", balanceOf(t, accountId))
			})
		}
	})

	t.Run("should reject category of another type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "0")
		salary, err := categories.Create(ctx, category.Category{Name: "Salary", Type: ledger.Income})
		require.NoError(t, err)
		transaction := newTransaction(accountId, ledger.Expense, "10")
		transaction.CategoryId = salary.Id

		// when
		_, _, err = service.Create(ctx, transaction)

		// then
		assert.True(t, apperrors.IsValidation(err))
		assert.Empty(t, ledgerStub.Entries)
	})

	t.Run("should reject account of another user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		foreignAccount := createAccount(t, otherUserCtx, "Bank", "0")

		_, _, err := service.Create(ctx, newTransaction(foreignAccount, ledger.Income, "10"))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Empty(t, ledgerStub.Entries)
	})

	t.Run("should reject missing account", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, _, err := service.Create(ctx, newTransaction(42, ledger.Income, "10"))

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("should reject guest", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, _, err := service.Create(context.Background(), newTransaction(1, ledger.Income, "10"))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should recalculate both accounts when moved", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountA := createAccount(t, ctx, "A", "100")
		accountB := createAccount(t, ctx, "B", "50")
		created, _, err := service.Create(ctx, newTransaction(accountA, ledger.Expense, "30"))
		require.NoError(t, err)
		assertDecimal(t, "70", balanceOf(t, accountA))

		// when
		moved := created
		moved.AccountId = accountB
		updated, totals, err := service.Update(ctx, moved)

		// then
		require.NoError(t, err)
		assert.Equal(t, accountB, updated.AccountId)
		assertDecimal(t, "100", balanceOf(t, accountA))
		assertDecimal(t, "20", balanceOf(t, accountB))
		assertDecimal(t, "120", totals.TotalBalance)
	})

	t.Run("should recalculate when type changes", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "0")
		created, _, err := service.Create(ctx, newTransaction(accountId, ledger.Expense, "40"))
		require.NoError(t, err)

		// when
		created.Type = ledger.Income
		_, _, err = service.Update(ctx, created)

		// then
		require.NoError(t, err)
		assertDecimal(t, "40", balanceOf(t, accountId))
	})

	t.Run("should keep stored date when date is missing", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "0")
		created, _, err := service.Create(ctx, newTransaction(accountId, ledger.Expense, "15"))
		require.NoError(t, err)

		// when
		edited := created
		edited.Note = "groceries"
		edited.Date = time.Time{}
		updated, _, err := service.Update(ctx, edited)

		// then
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), updated.Date)
		assert.Equal(t, "groceries", updated.Note)
		stored, err := service.Get(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), stored.Date)
	})

	t.Run("should reject transaction of another user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		foreignAccount := createAccount(t, otherUserCtx, "Bank", "0")
		foreign, _, err := service.Create(otherUserCtx, newTransaction(foreignAccount, ledger.Income, "10"))
		require.NoError(t, err)
		ownAccount := createAccount(t, ctx, "Bank", "0")

		foreign.AccountId = ownAccount
		_, _, err = service.Update(ctx, foreign)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("should not touch balances when invalid", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "0")
		created, _, err := service.Create(ctx, newTransaction(accountId, ledger.Income, "25"))
		require.NoError(t, err)

		// when
		created.Amount = decimal.Zero
		_, _, err = service.Update(ctx, created)

		// then
		assert.True(t, apperrors.IsValidation(err))
		assertDecimal(t, "25", balanceOf(t, accountId))
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should recalculate account after delete", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "0")
		income, _, err := service.Create(ctx, newTransaction(accountId, ledger.Income, "200"))
		require.NoError(t, err)
		_, _, err = service.Create(ctx, newTransaction(accountId, ledger.Expense, "50"))
		require.NoError(t, err)
		assertDecimal(t, "150", balanceOf(t, accountId))

		// when
		totals, err := service.Delete(ctx, income.Id)

		// then
		require.NoError(t, err)
		assertDecimal(t, "-50", balanceOf(t, accountId))
		assertDecimal(t, "0", totals.TotalIncome)
		assertDecimal(t, "-50", totals.TotalBalance)
	})

	t.Run("should return not found for missing transaction", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Delete(ctx, 99)

		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should keep transactions of deleted category without category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "0")
		food, err := categories.Create(ctx, category.Category{Name: "Food", Type: ledger.Expense})
		require.NoError(t, err)
		transaction := newTransaction(accountId, ledger.Expense, "12.50")
		transaction.CategoryId = food.Id
		_, _, err = service.Create(ctx, transaction)
		require.NoError(t, err)

		// when
		require.NoError(t, categories.Delete(ctx, food.Id))

		// then
		transactions, err := service.List(ctx, ledger.Filter{})
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Zero(t, transactions[0].CategoryId)
		assertDecimal(t, "-12.50", balanceOf(t, accountId))
	})

	t.Run("should filter by date range and type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "0")
		for _, day := range []int{1, 10, 31} {
			transaction := newTransaction(accountId, ledger.Expense, "1")
			transaction.Date = time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
			_, _, err := service.Create(ctx, transaction)
			require.NoError(t, err)
		}
		_, _, err := service.Create(ctx, newTransaction(accountId, ledger.Income, "5"))
		require.NoError(t, err)

		// when
		transactions, err := service.List(ctx, ledger.Filter{
			Type: ledger.Expense,
			From: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		})

		// then
		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, 31, transactions[0].Date.Day())
		assert.Equal(t, 10, transactions[1].Date.Day())
	})

	t.Run("should return nothing for guest", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		accountId := createAccount(t, ctx, "Bank", "0")
		_, _, err := service.Create(ctx, newTransaction(accountId, ledger.Income, "5"))
		require.NoError(t, err)

		transactions, err := service.List(context.Background(), ledger.Filter{})

		require.NoError(t, err)
		assert.Empty(t, transactions)
	})
}

func TestServiceImpl_Daily(t *testing.T) {
	t.Run("should group transactions per day", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		accountId := createAccount(t, ctx, "Bank", "0")
		add := func(day int, entryType ledger.EntryType, amount string) {
			transaction := newTransaction(accountId, entryType, amount)
			transaction.Date = time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
			_, _, err := service.Create(ctx, transaction)
			require.NoError(t, err)
		}
		add(2, ledger.Income, "100")
		add(2, ledger.Expense, "20")
		add(2, ledger.Expense, "5.50")
		add(5, ledger.Expense, "7")

		// when
		days, err := service.Daily(ctx, time.Time{}, time.Time{})

		// then
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, 5, days[0].Date.Day())
		assertDecimal(t, "0", days[0].Income)
		assertDecimal(t, "7", days[0].Expense)
		assert.Len(t, days[1].Transactions, 3)
		assertDecimal(t, "100", days[1].Income)
		assertDecimal(t, "25.50", days[1].Expense)
	})
}
