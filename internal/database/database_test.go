package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "flights.db?"+sqlitePragmas, sqliteDSN("flights.db"))
	assert.Equal(t, "file:flights.db?mode=rwc&"+sqlitePragmas, sqliteDSN("file:flights.db?mode=rwc"))
}

func TestOpenSQLite_ConcurrentWrites(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "flights.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, SetupSQLite(ctx, db, false))

	const writers = 64
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			_, err := db.ExecContext(ctx, `INSERT INTO flight (departure_city, arrival_city) VALUES (?, ?)`, "tampa", "dallas")
			return err
		})
	}
	require.NoError(t, g.Wait())

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flight`).Scan(&count))
	assert.Equal(t, writers, count)

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
