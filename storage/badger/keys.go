package badger

import (
	"fmt"

	"github.com/tessierlabs/dossier/core"
)

// Key prefixes for the two snapshot artifacts
const (
	snapshotBlobPrefix = "snapblob"
	snapshotMetaPrefix = "snapmeta"
)

// makeSnapshotBlobKey generates the key for an owner's document-sequence blob.
func makeSnapshotBlobKey(owner core.Owner) []byte {
	return []byte(fmt.Sprintf("%s:%d:%d", snapshotBlobPrefix, owner.ClientID, owner.UserID))
}

// makeSnapshotMetaKey generates the key for an owner's metadata record.
func makeSnapshotMetaKey(owner core.Owner) []byte {
	return []byte(fmt.Sprintf("%s:%d:%d", snapshotMetaPrefix, owner.ClientID, owner.UserID))
}
