// Copyright 2026 Tessier Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tessierlabs/dossier/core"
	"github.com/tessierlabs/dossier/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
// The two artifacts of a snapshot share one transaction, so a reader
// either sees the complete pair or nothing.
type SnapshotRepository struct {
	backend *Backend
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) *SnapshotRepository {
	return &SnapshotRepository{
		backend: backend,
	}
}

// snapshotMeta is the JSON metadata record, the second artifact of the
// persisted pair.
type snapshotMeta struct {
	UserID            int64     `json:"user_id"`
	ClientID          int64     `json:"client_id"`
	IngestedSourceIDs []int64   `json:"ingested_source_ids"`
	SavedAt           time.Time `json:"saved_at"`
	DocumentsCount    int       `json:"documents_count"`
	Checksum          string    `json:"checksum"`
}

// SaveSnapshot persists the owner's snapshot, replacing any previous one.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *core.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if err := core.ValidateOwner(snapshot.Owner); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	blob := storage.MarshalDocuments(snapshot.Documents)

	savedAt := snapshot.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	ids := snapshot.IngestedSourceIDs
	if ids == nil {
		ids = []int64{}
	}

	meta := snapshotMeta{
		UserID:            snapshot.Owner.UserID,
		ClientID:          snapshot.Owner.ClientID,
		IngestedSourceIDs: ids,
		SavedAt:           savedAt,
		DocumentsCount:    len(snapshot.Documents),
		Checksum:          storage.ChecksumBlob(blob),
	}

	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSnapshotBlobKey(snapshot.Owner), blob); err != nil {
			return err
		}
		if err := tx.Set(makeSnapshotMetaKey(snapshot.Owner), metaBytes); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot retrieves the owner's snapshot.
// A missing pair, or a pair with only one artifact present, yields
// (nil, nil). A pair that cannot be decoded or fails its checksum yields
// storage.ErrSnapshotCorrupt.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, owner core.Owner) (*core.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := core.ValidateOwner(owner); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var blob, metaBytes []byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSnapshotBlobKey(owner))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err = tx.Get(makeSnapshotMetaKey(owner))
		if err != nil {
			return err
		}
		metaBytes, err = item.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		// A partial pair counts as absent, not corrupt.
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var meta snapshotMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("%w: metadata: %w", storage.ErrSnapshotCorrupt, err)
	}

	if meta.Checksum != storage.ChecksumBlob(blob) {
		return nil, fmt.Errorf("%w: checksum mismatch", storage.ErrSnapshotCorrupt)
	}

	docs, err := storage.UnmarshalDocuments(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSnapshotCorrupt, err)
	}

	if len(docs) != meta.DocumentsCount {
		return nil, fmt.Errorf("%w: metadata reports %d documents, blob holds %d",
			storage.ErrSnapshotCorrupt, meta.DocumentsCount, len(docs))
	}

	return &core.Snapshot{
		Owner:             owner,
		Documents:         docs,
		IngestedSourceIDs: meta.IngestedSourceIDs,
		SavedAt:           meta.SavedAt,
	}, nil
}

// DeleteSnapshot removes both artifacts of the owner's snapshot.
func (r *SnapshotRepository) DeleteSnapshot(ctx context.Context, owner core.Owner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := core.ValidateOwner(owner); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeSnapshotBlobKey(owner)); err != nil {
			return err
		}
		if err := tx.Delete(makeSnapshotMetaKey(owner)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close releases repository resources. The underlying backend is shared
// and closed separately.
func (r *SnapshotRepository) Close() error {
	return nil
}
