package badger

import (
	"context"
	"testing"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessierlabs/dossier/core"
	"github.com/tessierlabs/dossier/storage"
)

func newTestRepo(t *testing.T) (storage.SnapshotRepository, *Backend) {
	t.Helper()
	repo, backend, err := NewMemorySnapshotRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo, backend
}

func testSnapshot(owner core.Owner) *core.Snapshot {
	return &core.Snapshot{
		Owner: owner,
		Documents: []core.Document{
			{SourceID: 1, Title: "Procédure résiliation", Filename: "proc.txt", Text: "Enregistrer dans le CRM."},
			{SourceID: 2, Title: "Contrat", Filename: "contrat.txt", Text: "Clauses du contrat."},
		},
		IngestedSourceIDs: []int64{1, 2},
		SavedAt:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotSaveLoadRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	owner := core.Owner{ClientID: 1, UserID: 2}

	require.NoError(t, repo.SaveSnapshot(ctx, testSnapshot(owner)))

	loaded, err := repo.LoadSnapshot(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, owner, loaded.Owner)
	assert.Equal(t, []int64{1, 2}, loaded.IngestedSourceIDs)
	require.Len(t, loaded.Documents, 2)
	assert.Equal(t, "Procédure résiliation", loaded.Documents[0].Title)
	assert.Equal(t, "Clauses du contrat.", loaded.Documents[1].Text)
	assert.Equal(t, testSnapshot(owner).SavedAt, loaded.SavedAt)
}

func TestSnapshotAbsent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	loaded, err := repo.LoadSnapshot(ctx, core.Owner{ClientID: 5, UserID: 5})
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotOverwrite(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	owner := core.Owner{ClientID: 1, UserID: 2}

	require.NoError(t, repo.SaveSnapshot(ctx, testSnapshot(owner)))

	updated := &core.Snapshot{
		Owner:             owner,
		Documents:         []core.Document{{SourceID: 9, Title: "Nouveau", Text: "Nouveau texte."}},
		IngestedSourceIDs: []int64{9},
	}
	require.NoError(t, repo.SaveSnapshot(ctx, updated))

	loaded, err := repo.LoadSnapshot(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Documents, 1)
	assert.Equal(t, int64(9), loaded.Documents[0].SourceID)
	assert.False(t, loaded.SavedAt.IsZero())
}

func TestSnapshotOwnersAreIsolated(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	ownerA := core.Owner{ClientID: 1, UserID: 1}
	ownerB := core.Owner{ClientID: 1, UserID: 2}

	require.NoError(t, repo.SaveSnapshot(ctx, testSnapshot(ownerA)))

	loaded, err := repo.LoadSnapshot(ctx, ownerB)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotPartialPairIsAbsent(t *testing.T) {
	repo, backend := newTestRepo(t)
	ctx := context.Background()
	owner := core.Owner{ClientID: 1, UserID: 2}

	require.NoError(t, repo.SaveSnapshot(ctx, testSnapshot(owner)))

	// Drop one artifact of the pair.
	err := backend.WithTx(func(tx *badgerdb.Txn) error {
		if err := tx.Delete(makeSnapshotMetaKey(owner)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	loaded, err := repo.LoadSnapshot(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotCorruptBlob(t *testing.T) {
	repo, backend := newTestRepo(t)
	ctx := context.Background()
	owner := core.Owner{ClientID: 1, UserID: 2}

	require.NoError(t, repo.SaveSnapshot(ctx, testSnapshot(owner)))

	// Overwrite the blob without touching the metadata.
	err := backend.WithTx(func(tx *badgerdb.Txn) error {
		if err := tx.Set(makeSnapshotBlobKey(owner), []byte("not a snapshot")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	_, err = repo.LoadSnapshot(ctx, owner)
	assert.ErrorIs(t, err, storage.ErrSnapshotCorrupt)
}

func TestSnapshotDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	owner := core.Owner{ClientID: 1, UserID: 2}

	require.NoError(t, repo.SaveSnapshot(ctx, testSnapshot(owner)))
	require.NoError(t, repo.DeleteSnapshot(ctx, owner))

	loaded, err := repo.LoadSnapshot(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting again is not an error.
	require.NoError(t, repo.DeleteSnapshot(ctx, owner))
}

func TestSnapshotClosedBackend(t *testing.T) {
	repo, backend, err := NewMemorySnapshotRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	ctx := context.Background()
	owner := core.Owner{ClientID: 1, UserID: 2}

	assert.ErrorIs(t, repo.SaveSnapshot(ctx, testSnapshot(owner)), storage.ErrStorageClosed)
	_, err = repo.LoadSnapshot(ctx, owner)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
