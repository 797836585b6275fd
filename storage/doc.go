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


// Package storage provides the snapshot persistence abstraction for
// dossier.
//
// Each owner has at most one persisted snapshot, stored as a pair of
// artifacts: a versioned mus-format blob holding the ordered document
// sequence, and a JSON metadata record holding the ingested source id
// ledger, the save timestamp and a checksum of the blob. The pair is
// written atomically; on restore, a missing half or a checksum mismatch
// makes the whole snapshot count as absent so the caller rebuilds from
// the catalog instead of trusting damaged state.
//
// The badger subpackage implements SnapshotRepository on BadgerDB and
// offers an in-memory mode for tests.
//
// # Thread safety
//
// All repository implementations must be safe for concurrent use.
package storage
