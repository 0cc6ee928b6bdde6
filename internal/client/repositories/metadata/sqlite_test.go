package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_Snapshot(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	snapshot := []byte(`{"isUserLoggedIn":true,"sessionId":"s-1"}`)
	require.NoError(t, r.Set(ctx, "storefront-user-store", snapshot))

	v, err := r.Get(ctx, "storefront-user-store")
	require.NoError(t, err)
	require.JSONEq(t, string(snapshot), string(v))
}

func TestGet_MissingKeyReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "session_id")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session_id", []byte("s-old")))
	require.NoError(t, r.Set(ctx, "session_id", []byte("s-new")))

	v, err := r.Get(ctx, "session_id")
	require.NoError(t, err)
	require.Equal(t, []byte("s-new"), v)
}

func TestClosedDB_ErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")
}

func TestGet_DriverErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk I/O error")
	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).
		WithArgs("storefront-user-store").
		WillReturnError(boom)

	v, err := NewSQLiteRepository(db).Get(context.Background(), "storefront-user-store")
	require.ErrorIs(t, err, boom)
	require.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_DriverErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("database is locked")
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs("session_id", []byte("s-1")).
		WillReturnError(boom)

	err = NewSQLiteRepository(db).Set(context.Background(), "session_id", []byte("s-1"))
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
