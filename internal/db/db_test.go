package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	err = db.Ping()
	assert.NoError(t, err)
}

func TestMigrationsApply(t *testing.T) {
	db, err := sql.Open("sqlite", "file:migrations_test?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	err = runMigrations(db)
	assert.NoError(t, err)

	// Verify tables exist
	var tableName string

	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='projects'").Scan(&tableName)
	assert.NoError(t, err)
	assert.Equal(t, "projects", tableName)

	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='cards'").Scan(&tableName)
	assert.NoError(t, err)
	assert.Equal(t, "cards", tableName)
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", "file:idempotent_test?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	require.NoError(t, runMigrations(db))
	assert.NoError(t, runMigrations(db))
}
