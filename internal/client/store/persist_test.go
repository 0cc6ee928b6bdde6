package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type failingRepo struct{ err error }

func (r failingRepo) Get(context.Context, string) ([]byte, error) { return nil, r.err }

func (r failingRepo) Set(context.Context, string, []byte) error { return r.err }

func failingPersister(t *testing.T, err error) *MetadataPersister {
	t.Helper()
	p := NewMetadataPersister(openDB(t))
	p.newRepo = func(dbx.DBTX) metadata.Repository { return failingRepo{err: err} }
	return p
}

func TestMetadataPersister_RepositoryErrors(t *testing.T) {
	boom := errors.New("database is locked")
	p := failingPersister(t, boom)
	ctx := context.Background()

	_, err := p.Load(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, p.Save(ctx, State{SessionID: "s-1"}), boom)
	require.ErrorIs(t, p.SaveSessionID(ctx, "s-1"), boom)
}

func TestStore_RepositoryFailuresAreContained(t *testing.T) {
	boom := errors.New("database is locked")
	api := &fakeAPI{openResp: client.Ok("sess-1")}
	s := New(api, failingPersister(t, boom), nil)
	ctx := context.Background()

	require.ErrorIs(t, s.Hydrate(ctx), boom)
	require.True(t, s.State().HasHydrated)

	s.SetUser(&models.User{ID: "u-1"}, "tok")
	require.NoError(t, s.StartSession(ctx))

	st := s.State()
	assert.True(t, st.IsUserLoggedIn)
	assert.Equal(t, "sess-1", st.SessionID)
}

func TestMetadataPersister_LoadEmpty(t *testing.T) {
	p := NewMetadataPersister(openDB(t))

	st, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, st)
}

func TestMetadataPersister_SaveLoadRoundTrip(t *testing.T) {
	p := NewMetadataPersister(openDB(t))
	ctx := context.Background()

	in := State{
		User:            &models.User{ID: "u-1", Email: "ada@example.org", AccessToken: "at"},
		Token:           "at",
		SessionID:       "s-1",
		IsEmailVerified: true,
		IsUserLoggedIn:  true,
		HasHydrated:     true,
	}
	require.NoError(t, p.Save(ctx, in))

	out, err := p.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)

	in.HasHydrated = false
	assert.Equal(t, in, *out)
}

func TestMetadataPersister_SnapshotShape(t *testing.T) {
	db := openDB(t)
	p := NewMetadataPersister(db)
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, State{SessionID: "s-1", HasHydrated: true}))

	raw, err := metadata.NewSQLiteRepository(db).Get(ctx, common.UserStoreKey)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.EqualValues(t, 0, doc["version"])

	state, ok := doc["state"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "s-1", state["sessionId"])
	assert.NotContains(t, state, "hasHydrated")
	assert.NotContains(t, state, "HasHydrated")
}

func TestMetadataPersister_RejectsCorruptOrFutureSnapshot(t *testing.T) {
	db := openDB(t)
	p := NewMetadataPersister(db)
	repo := metadata.NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, common.UserStoreKey, []byte(`{not json`)))
	_, err := p.Load(ctx)
	require.Error(t, err)

	require.NoError(t, repo.Set(ctx, common.UserStoreKey, []byte(`{"state":{},"version":7}`)))
	_, err = p.Load(ctx)
	require.ErrorContains(t, err, "unsupported snapshot version 7")
}

func TestMetadataPersister_SaveSessionID(t *testing.T) {
	db := openDB(t)
	p := NewMetadataPersister(db)
	ctx := context.Background()

	require.NoError(t, p.SaveSessionID(ctx, "s-77"))

	raw, err := metadata.NewSQLiteRepository(db).Get(ctx, common.SessionIDKey)
	require.NoError(t, err)
	assert.Equal(t, "s-77", string(raw))
}

// A store restarted on the same database comes back logged in with its session.
func TestStore_SurvivesRestart(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	api := &fakeAPI{openResp: client.Ok("sess-restart")}

	first := New(api, NewMetadataPersister(db), nil)
	require.NoError(t, first.Hydrate(ctx))
	first.SetUser(&models.User{ID: "u-1", Name: "Ada"}, "tok")
	require.NoError(t, first.StartSession(ctx))

	second := New(api, NewMetadataPersister(db), nil)
	require.False(t, second.State().HasHydrated)
	require.NoError(t, second.Hydrate(ctx))

	st := second.State()
	assert.True(t, st.HasHydrated)
	assert.True(t, st.IsUserLoggedIn)
	assert.Equal(t, "Ada", st.User.Name)
	assert.Equal(t, "sess-restart", st.SessionID)

	raw, err := metadata.NewSQLiteRepository(db).Get(ctx, common.SessionIDKey)
	require.NoError(t, err)
	assert.Equal(t, "sess-restart", string(raw))
}
