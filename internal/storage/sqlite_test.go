package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorozov/testoria/internal/dbx"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return NewSQLite(db)
}

func TestSQLite_SetAndGet(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", []byte{0x01, 0x02}))

	v, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestSQLite_Get_NotExists_ReturnsNilNil(t *testing.T) {
	s := setupSQLite(t)

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLite_Set_UpsertOverwritesValue(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("old")))
	require.NoError(t, s.Set(ctx, "k", []byte("new")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSQLite_ListAndClear(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, s.Set(ctx, "b", []byte{0xBB, 0xCC}))

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])

	require.NoError(t, s.Clear(ctx))

	m, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestOpenSQLite_AppliesMigrations(t *testing.T) {
	ctx := context.Background()

	s, db, err := OpenSQLite(ctx, t.TempDir()+"/testoria.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, s.Set(ctx, "accounts", []byte(`[]`)))

	v, err := s.Get(ctx, "accounts")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), v)
}

func TestSQLite_SetManyAndDeleteMany(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SetMany(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}))

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, m)

	require.NoError(t, s.DeleteMany(ctx, "a", "b"))

	m, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLite_SetMany_InsideExternalTx(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLite(tx).SetMany(ctx, map[string][]byte{
			"a": []byte("1"),
			"b": []byte("2"),
		})
	})
	require.NoError(t, err)

	m, err := NewSQLite(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
}
