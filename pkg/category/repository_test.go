package category

import (
	"context"
	"os"
	"testing"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/test_utils"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *pgxpool.Pool, Repository, int) {
	ctx := context.Background()
	db := openDb()
	userId := test_utils.InsertUser(t, db, "jane")
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, db, NewRepo(db), userId
}

func TestRepositoryImpl_Create(t *testing.T) {
	t.Run("should store category with default budget", func(t *testing.T) {
		// given
		ctx, _, repo, userId := setupTestRepository(t)
		budget := decimal.RequireFromString("120.50")

		// when
		created, err := repo.Create(ctx, Category{UserId: userId, Name: "Food", Type: ledger.Expense,
			Color: "#FF5722", Icon: "🍔", DefaultBudget: &budget})

		// then
		require.NoError(t, err)
		stored, err := repo.Get(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, ledger.Expense, stored.Type)
		require.NotNil(t, stored.DefaultBudget)
		assert.True(t, budget.Equal(*stored.DefaultBudget))
	})

	t.Run("should store category without default budget", func(t *testing.T) {
		ctx, _, repo, userId := setupTestRepository(t)

		created, err := repo.Create(ctx, Category{UserId: userId, Name: "Salary", Type: ledger.Income, Color: "#4CAF50", Icon: "💼"})

		require.NoError(t, err)
		assert.Nil(t, created.DefaultBudget)
	})

	t.Run("should map duplicated name and type to validation error", func(t *testing.T) {
		ctx, _, repo, userId := setupTestRepository(t)
		_, err := repo.Create(ctx, Category{UserId: userId, Name: "Other", Type: ledger.Expense, Color: "#FFA500", Icon: "📁"})
		require.NoError(t, err)

		_, err = repo.Create(ctx, Category{UserId: userId, Name: "Other", Type: ledger.Expense, Color: "#FFA500", Icon: "📁"})

		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestRepositoryImpl_List(t *testing.T) {
	t.Run("should filter by type and owner", func(t *testing.T) {
		// given
		ctx, db, repo, userId := setupTestRepository(t)
		otherId := test_utils.InsertUser(t, db, "john")
		for _, c := range []Category{
			{UserId: userId, Name: "Salary", Type: ledger.Income},
			{UserId: userId, Name: "Food", Type: ledger.Expense},
			{UserId: userId, Name: "Bills", Type: ledger.Expense},
			{UserId: otherId, Name: "Food", Type: ledger.Expense},
		} {
			c.Color, c.Icon = "#FFA500", "📁"
			_, err := repo.Create(ctx, c)
			require.NoError(t, err)
		}

		// when
		expenses, err := repo.List(ctx, userId, ledger.Expense)
		require.NoError(t, err)
		all, err := repo.List(ctx, userId, "")
		require.NoError(t, err)

		// then
		require.Len(t, expenses, 2)
		assert.Equal(t, "Food", expenses[0].Name)
		assert.Equal(t, "Bills", expenses[1].Name)
		assert.Len(t, all, 3)
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	t.Run("should keep transactions without category", func(t *testing.T) {
		// given
		ctx, db, repo, userId := setupTestRepository(t)
		created, err := repo.Create(ctx, Category{UserId: userId, Name: "Food", Type: ledger.Expense, Color: "#FFA500", Icon: "📁"})
		require.NoError(t, err)
		var accountId, transactionId int
		require.NoError(t, db.QueryRow(ctx,
			`INSERT INTO accounts (user_id, name, icon, initial_amount, balance) VALUES ($1, 'Bank', '🏦', 0, 0) RETURNING id`,
			userId).Scan(&accountId))
		require.NoError(t, db.QueryRow(ctx,
			`INSERT INTO transactions (user_id, account_id, category_id, amount, type, note, date)
			 VALUES ($1, $2, $3, 10, 'expense', '', '2024-03-01') RETURNING id`,
			userId, accountId, created.Id).Scan(&transactionId))

		// when
		deleted, err := repo.Delete(ctx, userId, created.Id)

		// then
		require.NoError(t, err)
		assert.True(t, deleted)
		var categoryId *int
		require.NoError(t, db.QueryRow(ctx, `SELECT category_id FROM transactions WHERE id = $1`, transactionId).Scan(&categoryId))
		assert.Nil(t, categoryId)
	})

	t.Run("should not delete category of another user", func(t *testing.T) {
		ctx, _, repo, userId := setupTestRepository(t)
		created, err := repo.Create(ctx, Category{UserId: userId, Name: "Food", Type: ledger.Expense, Color: "#FFA500", Icon: "📁"})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, userId+100, created.Id)

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
