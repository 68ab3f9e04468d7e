package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvPrefix+"_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("JOURNAL_DB_DATABASE", filepath.Join(t.TempDir(), "journal.db"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.True(t, cfg.IsEmbedded())
	assert.Equal(t, 60, cfg.StreakLookbackDays)
	assert.Equal(t, 3660, cfg.StreakMaxLookbackDays)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "JOURNAL_PORT=4100\nJOURNAL_PAGE_SIZE=25\nJOURNAL_DB_DATABASE=" + filepath.Join(dir, "j.db") + "\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Setenv(EnvPrefix+"_ENV_FILE", envFile)
	t.Cleanup(func() {
		// godotenv sets these on the process environment
		os.Unsetenv("JOURNAL_PORT")
		os.Unsetenv("JOURNAL_PAGE_SIZE")
		os.Unsetenv("JOURNAL_DB_DATABASE")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4100", cfg.Port)
	assert.Equal(t, 25, cfg.PageSize)
}

func TestResolveDefaults(t *testing.T) {
	t.Run("UnsupportedType", func(t *testing.T) {
		cfg := &Config{DBType: "oracle"}
		assert.Error(t, cfg.ResolveDefaults())
	})

	t.Run("PostgresRequiresDatabaseAndUser", func(t *testing.T) {
		cfg := &Config{DBType: "postgres", DBConnectionLimit: 5}
		assert.Error(t, cfg.ResolveDefaults())

		cfg = &Config{DBType: "Postgres", DBDatabase: "journal", DBUser: "me", DBConnectionLimit: 5}
		require.NoError(t, cfg.ResolveDefaults())
		assert.Equal(t, "postgres", cfg.DBType)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.False(t, cfg.IsEmbedded())
	})

	t.Run("SqliteGetsDefaultPath", func(t *testing.T) {
		cfg := &Config{DBType: "sqlite3"}
		require.NoError(t, cfg.ResolveDefaults())
		assert.NotEmpty(t, cfg.DBDatabase)
		assert.Equal(t, 1, cfg.DBConnectionLimit)
		assert.Equal(t, 10, cfg.PageSize)
	})

	t.Run("MaxLookback", func(t *testing.T) {
		cfg := &Config{DBType: "sqlite", DBDatabase: "x.db", StreakLookbackDays: 60}
		require.NoError(t, cfg.ResolveDefaults())
		assert.Equal(t, 3660, cfg.StreakMaxLookbackDays)

		cfg = &Config{DBType: "sqlite", DBDatabase: "x.db", StreakLookbackDays: 400, StreakMaxLookbackDays: 365}
		assert.Error(t, cfg.ResolveDefaults())
	})

	t.Run("NegativeLookback", func(t *testing.T) {
		cfg := &Config{DBType: "sqlite", DBDatabase: "x.db", StreakLookbackDays: -1}
		assert.Error(t, cfg.ResolveDefaults())
	})
}

func TestEnsureDBDir(t *testing.T) {
	dir := t.TempDir()
	path, err := EnsureDBDir(filepath.Join(dir, "nested", "deeper", "journal.db"))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	mem, err := EnsureDBDir(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", mem)
}
