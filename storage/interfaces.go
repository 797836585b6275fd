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


package storage

import (
	"context"

	"github.com/tessierlabs/dossier/core"
)

// SnapshotRepository persists one durable index snapshot per owner.
// Implementations must be thread-safe and must write the snapshot's two
// artifacts (document-sequence blob and metadata record) atomically as a
// pair: a reader never observes one without the other.
type SnapshotRepository interface {
	// SaveSnapshot writes the owner's snapshot, replacing any previous one.
	SaveSnapshot(ctx context.Context, snapshot *core.Snapshot) error

	// LoadSnapshot retrieves the owner's snapshot.
	// Returns (nil, nil) when no snapshot exists, including when only one
	// artifact of the pair is present.
	// Returns ErrSnapshotCorrupt when the pair exists but cannot be
	// decoded or fails its checksum.
	LoadSnapshot(ctx context.Context, owner core.Owner) (*core.Snapshot, error)

	// DeleteSnapshot removes the owner's snapshot. Deleting a snapshot
	// that does not exist is not an error.
	DeleteSnapshot(ctx context.Context, owner core.Owner) error

	// Close closes the repository and releases resources.
	Close() error
}
