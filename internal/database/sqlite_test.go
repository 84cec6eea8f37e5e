package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_AppliesMigrations(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	applied, err := NewMigrationManager(db).AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Len(t, applied, len(migrations))

	for _, table := range []string{"tracking_events", "status_records"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}

	// re-running is a no-op
	require.NoError(t, NewMigrationManager(db).RunMigrations(ctx))
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := Transaction(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO status_records (user_id, status, start_time) VALUES (1, 'NOT_WORKING', 'x')"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM status_records").Scan(&n))
	assert.Zero(t, n)
}
