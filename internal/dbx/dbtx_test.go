package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openKV(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL);
		INSERT INTO kv(key, value) VALUES ('@clients', '[]'), ('@jobs', '[]'), ('@quotes', '[]');`)
	require.NoError(t, err)
	return db
}

func keys(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT key FROM kv ORDER BY key`)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		out = append(out, k)
	}
	require.NoError(t, rows.Err())
	return out
}

func deleteKey(ctx context.Context, tx DBTX, key string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

func TestWithTx_CommitsAllSteps(t *testing.T) {
	db := openKV(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := deleteKey(ctx, tx, "@jobs"); err != nil {
			return err
		}
		return deleteKey(ctx, tx, "@quotes")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"@clients"}, keys(t, db))
}

func TestWithTx_RollsBackWhenAStepFails(t *testing.T) {
	db := openKV(t)
	stepErr := errors.New("invoices step failed")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, deleteKey(ctx, tx, "@jobs"))
		return stepErr
	})
	require.ErrorIs(t, err, stepErr)
	assert.Equal(t, []string{"@clients", "@jobs", "@quotes"}, keys(t, db))
}

func TestWithTx_RollsBackAndRepanics(t *testing.T) {
	db := openKV(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, deleteKey(ctx, tx, "@clients"))
			panic("kaput")
		})
	})
	assert.Equal(t, []string{"@clients", "@jobs", "@quotes"}, keys(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := openKV(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}
