package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "mathspeak.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, path, db.Path())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Migrate())
}

func TestSymbols_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	saved := created.Add(time.Hour)
	rows := []SymbolRow{
		{Key: "X", Name: "X", Definition: "a topological space", Context: "main text", UsageCount: 2, CreatedAt: created},
		{Key: "alpha", Name: "alpha", Definition: "the step size", UsageCount: 0, CreatedAt: created, Aliases: []string{"a", "α"}},
	}
	require.NoError(t, db.SaveSymbols(rows, saved))

	got, savedAt, err := db.LoadSymbols()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "X", got[0].Key)
	assert.Equal(t, "alpha", got[1].Key)
	assert.Equal(t, 2, got[0].UsageCount)
	assert.Equal(t, "a topological space", got[0].Definition)
	assert.True(t, created.Equal(got[0].CreatedAt))
	assert.ElementsMatch(t, []string{"a", "α"}, got[1].Aliases)
	assert.True(t, saved.Equal(savedAt))
}

func TestSaveSymbols_Replaces(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	require.NoError(t, db.SaveSymbols([]SymbolRow{{Key: "A", Name: "A", CreatedAt: now, Aliases: []string{"a1"}}}, now))
	require.NoError(t, db.SaveSymbols([]SymbolRow{{Key: "B", Name: "B", CreatedAt: now}}, now))

	got, _, err := db.LoadSymbols()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Key)
	assert.Empty(t, got[0].Aliases)
}

func TestLoadSymbols_Empty(t *testing.T) {
	db := newTestDB(t)
	got, savedAt, err := db.LoadSymbols()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, savedAt.IsZero())
}

func TestConfig(t *testing.T) {
	db := newTestDB(t)

	_, ok, err := db.GetConfig("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.SetConfig("k", "v1"))
	require.NoError(t, db.SetConfig("k", "v2"))
	v, ok, err := db.GetConfig("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}
