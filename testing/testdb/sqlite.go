package testdb

import (
	"context"
	"testing"

	"student-attendance-manager/internal/db"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// NewSQLite returns a private in-memory store with tables for models
// created in order. The store is closed when the test ends.
func NewSQLite(t *testing.T, models ...interface{}) *bun.DB {
	t.Helper()

	database, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(context.Background(), database, models...))

	return database
}
