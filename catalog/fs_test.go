package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessierlabs/dossier/core"
)

func TestFSStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	owner := core.Owner{ClientID: 1, UserID: 2}

	first, err := store.SaveDocument(ctx, owner, "procedure.txt", "Procédure résiliation", "procédures", "Enregistrer la résiliation dans le CRM.")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.SourceID)
	assert.Equal(t, "procedure.txt", first.OriginalFilename)

	second, err := store.SaveDocument(ctx, owner, "notes.md", "", "", "Des notes.")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.SourceID)
	// Title defaults to the filename stem.
	assert.Equal(t, "notes", second.Title)

	entries, err := store.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Procédure résiliation", entries[0].Title)
	assert.Equal(t, first.Locator, entries[0].Locator)
}

func TestFSStore_ReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	owner := core.Owner{ClientID: 1, UserID: 2}
	entry, err := store.SaveDocument(ctx, owner, "contrat.txt", "Contrat", "", "Clauses du contrat.")
	require.NoError(t, err)

	text, err := store.Read(ctx, owner, entry.Locator)
	require.NoError(t, err)
	assert.Equal(t, "Clauses du contrat.", text)
}

func TestFSStore_ReadRejectsCrossOwner(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	ownerA := core.Owner{ClientID: 1, UserID: 1}
	ownerB := core.Owner{ClientID: 1, UserID: 2}

	entry, err := store.SaveDocument(ctx, ownerA, "secret.txt", "Secret", "", "Contenu privé.")
	require.NoError(t, err)

	_, err = store.Read(ctx, ownerB, entry.Locator)
	assert.ErrorIs(t, err, ErrForbidden)

	// Path traversal out of the owner directory is forbidden too.
	_, err = store.Read(ctx, ownerB, "client_1/user_2/../user_1/secret.txt")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestFSStore_ReadMissingAndBinary(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	owner := core.Owner{ClientID: 3, UserID: 4}

	_, err = store.Read(ctx, owner, "client_3/user_4/absent.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Read(ctx, owner, "client_3/user_4/scan.pdf")
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = store.SaveDocument(ctx, owner, "scan.pdf", "Scan", "", "binary")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestFSStore_RemoveDocument(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	require.NoError(t, err)

	owner := core.Owner{ClientID: 1, UserID: 2}
	entry, err := store.SaveDocument(ctx, owner, "old.txt", "Ancien", "", "texte")
	require.NoError(t, err)

	require.NoError(t, store.RemoveDocument(ctx, owner, entry.SourceID))

	entries, err := store.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = store.RemoveDocument(ctx, owner, entry.SourceID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSStore_RemoveFirstKeepsLaterDocuments(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	owner := core.Owner{ClientID: 1, UserID: 2}
	first, err := store.SaveDocument(ctx, owner, "a.txt", "A", "", "contenu premier")
	require.NoError(t, err)
	second, err := store.SaveDocument(ctx, owner, "b.txt", "B", "", "contenu second")
	require.NoError(t, err)

	require.NoError(t, store.RemoveDocument(ctx, owner, first.SourceID))

	// The surviving document must keep both its manifest entry and its file.
	entries, err := store.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second.SourceID, entries[0].SourceID)

	text, err := store.Read(ctx, owner, second.Locator)
	require.NoError(t, err)
	assert.Equal(t, "contenu second", text)

	_, err = store.Read(ctx, owner, first.Locator)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSStore_SameSecondUploadsGetDistinctFiles(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	owner := core.Owner{ClientID: 1, UserID: 2}
	first, err := store.SaveDocument(ctx, owner, "notes.txt", "Notes", "", "contenu premier")
	require.NoError(t, err)
	second, err := store.SaveDocument(ctx, owner, "notes.txt", "Notes", "", "contenu second")
	require.NoError(t, err)

	assert.NotEqual(t, first.Locator, second.Locator)

	text, err := store.Read(ctx, owner, first.Locator)
	require.NoError(t, err)
	assert.Equal(t, "contenu premier", text)

	text, err = store.Read(ctx, owner, second.Locator)
	require.NoError(t, err)
	assert.Equal(t, "contenu second", text)
}

func TestFSStore_ManifestSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFSStore(dir)
	require.NoError(t, err)

	owner := core.Owner{ClientID: 9, UserID: 9}
	_, err = store.SaveDocument(ctx, owner, "a.txt", "A", "", "aaa")
	require.NoError(t, err)

	reopened, err := NewFSStore(dir)
	require.NoError(t, err)

	entries, err := reopened.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].Title)
}

func TestMemory_OwnershipAndFailures(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	ownerA := core.Owner{ClientID: 1, UserID: 1}
	ownerB := core.Owner{ClientID: 1, UserID: 2}

	entry := mem.Add(ownerA, Entry{SourceID: 1, Title: "Doc"}, "texte")

	text, err := mem.Read(ctx, ownerA, entry.Locator)
	require.NoError(t, err)
	assert.Equal(t, "texte", text)

	_, err = mem.Read(ctx, ownerB, entry.Locator)
	assert.ErrorIs(t, err, ErrForbidden)

	mem.FailRead(entry.Locator, ErrUnreadable)
	_, err = mem.Read(ctx, ownerA, entry.Locator)
	assert.ErrorIs(t, err, ErrUnreadable)
}
