package kv

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Repository { return NewSQLiteRepository(setupDB(t)) })
}

func TestSQLiteRepository_SetManyIsAtomic(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	// the CHECK makes the profile write fail so the token write must roll back
	_, err = db.Exec(`CREATE TABLE kv (
  key   TEXT PRIMARY KEY CHECK (key <> 'vivigo_user'),
  value BLOB NOT NULL
);`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	ctx := context.Background()

	err = r.SetMany(ctx, map[string][]byte{
		"vivigo_token": []byte("a.b.c"),
		"vivigo_user":  []byte("{}"),
	})
	require.Error(t, err)

	v, err := r.Get(ctx, "vivigo_token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_DBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set kv[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete kv[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear kv")
	require.Error(t, r.SetMany(ctx, map[string][]byte{"k": []byte("v")}))
	require.Error(t, r.DeleteMany(ctx, "k"))

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")
}
