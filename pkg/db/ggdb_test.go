package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "DATABASE.sqlite")

	raw, err := sql.Open(DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, CreateSchema(ctx, raw))
	_, err = raw.ExecContext(ctx, `INSERT INTO organisms (organism, organismid) VALUES (?, ?)`, "Methanosarcina mazei", "192952.1")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	store, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	assert.Equal(t, DriverSQLite, store.Driver())
	assert.Equal(t, path, store.Path())

	conn, err := store.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	var name string
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT organism FROM organisms WHERE organismid = ?`, "192952.1").Scan(&name))
	assert.Equal(t, "Methanosarcina mazei", name)
}

func TestOpenMissingSQLite(t *testing.T) {
	_, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "nope.sqlite"))
	assert.Error(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "whatever")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpenDuckDBInMemory(t *testing.T) {
	ctx := context.Background()

	store, err := Open(DriverDuckDB, "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, CreateSchema(ctx, store.DB()))
	_, err = store.DB().ExecContext(ctx, `INSERT INTO clusters (runid, clusterid, geneid) VALUES (?, ?, ?)`, "run1", 42, "fig|1.1.peg.1")
	require.NoError(t, err)

	var cluster string
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT clusterid FROM clusters WHERE geneid IN (?) AND runid = ?`, "fig|1.1.peg.1", "run1").Scan(&cluster))
	assert.Equal(t, "42", cluster)
}
