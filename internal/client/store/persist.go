package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
)

// Persister is the durable mirror of the store. Load returns (nil, nil)
// when nothing was saved yet.
type Persister interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s State) error
	SaveSessionID(ctx context.Context, sessionID string) error
}

// snapshotVersion is bumped when the persisted shape changes incompatibly.
const snapshotVersion = 0

type snapshot struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// MetadataPersister keeps the snapshot as one JSON record in the metadata
// table under common.UserStoreKey.
type MetadataPersister struct {
	db      *sql.DB
	newRepo func(dbx.DBTX) metadata.Repository
}

func NewMetadataPersister(db *sql.DB) *MetadataPersister {
	return &MetadataPersister{
		db: db,
		newRepo: func(q dbx.DBTX) metadata.Repository {
			return metadata.NewSQLiteRepository(q)
		},
	}
}

func (p *MetadataPersister) Load(ctx context.Context) (*State, error) {
	raw, err := p.newRepo(p.db).Get(ctx, common.UserStoreKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", common.UserStoreKey, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%s: unsupported snapshot version %d", common.UserStoreKey, snap.Version)
	}
	return &snap.State, nil
}

func (p *MetadataPersister) Save(ctx context.Context, s State) error {
	raw, err := json.Marshal(snapshot{State: s, Version: snapshotVersion})
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return p.newRepo(tx).Set(ctx, common.UserStoreKey, raw)
	})
}

func (p *MetadataPersister) SaveSessionID(ctx context.Context, sessionID string) error {
	return p.newRepo(p.db).Set(ctx, common.SessionIDKey, []byte(sessionID))
}
