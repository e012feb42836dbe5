package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when file is missing", func(t *testing.T) {
		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, ":8181", cfg.Server.Addr)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "budgetbee", cfg.Database.Schema)
	})

	t.Run("should override defaults from yaml file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := "server:\n  addr: \":9090\"\ndb:\n  host: db.internal\n  port: 6543\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, "budgetbee", cfg.Database.User)
	})

	t.Run("should override file values from environment", func(t *testing.T) {
		// given
		t.Setenv("BUDGETBEE_DB_NAME", "ledger")
		t.Setenv("BUDGETBEE_CATALOG_PATH", "/etc/budgetbee/catalog.yaml")

		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, "ledger", cfg.Database.Name)
		assert.Equal(t, "/etc/budgetbee/catalog.yaml", cfg.Catalog.Path)
	})
}
