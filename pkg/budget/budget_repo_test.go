package budget

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/budgetbee/budgetbee/internal/test_utils"
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

func setupTestRepository(t *testing.T) (context.Context, *pgxpool.Pool, BudgetRepo, int) {
	ctx := context.Background()
	db := openDb()
	userId := test_utils.InsertUser(t, db, "jane")
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, db, NewBudgetRepo(db), userId
}

func insertCategory(t *testing.T, db *pgxpool.Pool, owner int, name string) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO categories (user_id, name, type) VALUES ($1, $2, 'expense') RETURNING id`, owner, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestBudgetRepoImpl_Upsert(t *testing.T) {
	t.Run("should keep a single row per category and month", func(t *testing.T) {
		// given
		ctx, db, repo, userId := setupTestRepository(t)
		categoryId := insertCategory(t, db, userId, "Food")
		first, err := repo.Upsert(ctx, Budget{UserId: userId, CategoryId: categoryId, Month: time.March, Year: 2024,
			Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)

		// when
		second, err := repo.Upsert(ctx, Budget{UserId: userId, CategoryId: categoryId, Month: time.March, Year: 2024,
			Amount: decimal.RequireFromString("80.25")})

		// then
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		found, ok, err := repo.Find(ctx, userId, categoryId, time.March, 2024)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.March, found.Month)
		assert.True(t, decimal.RequireFromString("80.25").Equal(found.Amount))
		assert.False(t, found.CreatedAt.IsZero())
	})
}

func TestBudgetRepoImpl_GetAllForMonth(t *testing.T) {
	t.Run("should return budgets of the month only", func(t *testing.T) {
		// given
		ctx, db, repo, userId := setupTestRepository(t)
		food := insertCategory(t, db, userId, "Food")
		bills := insertCategory(t, db, userId, "Bills")
		for _, b := range []Budget{
			{CategoryId: food, Month: time.March, Year: 2024},
			{CategoryId: bills, Month: time.March, Year: 2024},
			{CategoryId: food, Month: time.April, Year: 2024},
			{CategoryId: food, Month: time.March, Year: 2025},
		} {
			b.UserId = userId
			b.Amount = decimal.NewFromInt(10)
			_, err := repo.Upsert(ctx, b)
			require.NoError(t, err)
		}

		// when
		budgets, err := repo.GetAllForMonth(ctx, userId, time.March, 2024)

		// then
		require.NoError(t, err)
		require.Len(t, budgets, 2)
		assert.Equal(t, food, budgets[0].CategoryId)
		assert.Equal(t, bills, budgets[1].CategoryId)
	})
}

func TestBudgetRepoImpl_Find(t *testing.T) {
	t.Run("should report missing budget", func(t *testing.T) {
		ctx, db, repo, userId := setupTestRepository(t)
		categoryId := insertCategory(t, db, userId, "Food")

		_, ok, err := repo.Find(ctx, userId, categoryId, time.March, 2024)

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBudgetRepoImpl_Delete(t *testing.T) {
	t.Run("should be removed with its category", func(t *testing.T) {
		// given
		ctx, db, repo, userId := setupTestRepository(t)
		categoryId := insertCategory(t, db, userId, "Food")
		created, err := repo.Upsert(ctx, Budget{UserId: userId, CategoryId: categoryId, Month: time.March, Year: 2024,
			Amount: decimal.NewFromInt(10)})
		require.NoError(t, err)

		// when
		_, err = db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryId)
		require.NoError(t, err)

		// then
		_, err = repo.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrBudgetNotFound)
	})

	t.Run("should not delete budget of another user", func(t *testing.T) {
		ctx, db, repo, userId := setupTestRepository(t)
		categoryId := insertCategory(t, db, userId, "Food")
		created, err := repo.Upsert(ctx, Budget{UserId: userId, CategoryId: categoryId, Month: time.March, Year: 2024,
			Amount: decimal.NewFromInt(10)})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, userId+100, created.ID)

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
