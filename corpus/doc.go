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


// Package corpus maintains one owner's in-memory document collection.
//
// A Corpus is the working set the ranking layers search over: documents
// are added through validation, an exclusion list and source-id
// deduplication, and keep their insertion order so score results can be
// addressed by index. Store ties the corpus to the record catalog and
// the snapshot repository: Rebuild re-ingests everything from the
// catalog with concurrent content fetches, Persist writes the durable
// snapshot pair and Restore reloads it, treating absent or corrupt
// snapshots as an empty corpus.
package corpus
