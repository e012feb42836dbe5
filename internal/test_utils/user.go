package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertUser stores a bare identity row and returns its id, for repository tests that need a
// foreign key owner.
func InsertUser(t *testing.T, db *pgxpool.Pool, username string) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (uid, username, display_name, email) VALUES ($1, $2, $3, $4) RETURNING id`,
		uuid.NewString(), username, username, username+"@example.com",
	).Scan(&id)
	require.NoError(t, err)
	return id
}
