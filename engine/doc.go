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


// Package engine is the owner-facing query orchestrator.
//
// Each owner gets an isolated retrieval state, built lazily on first
// use: a non-empty catalog triggers a full rebuild, an empty catalog
// falls back to the persisted snapshot. Query walks the retrieval
// chain (hybrid rank, simple-match fallback, answer extraction) and
// always terminates in an informative answer value; nothing on the
// query path raises an unrecoverable fault. Refresh rebuilds and
// persists under the owner's write lock, so concurrent queries never
// observe a partially rebuilt corpus.
package engine
