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


package corpus

import "errors"

var (
	// ErrCatalogRequired is returned when a record catalog is not provided.
	ErrCatalogRequired = errors.New("record catalog required")

	// ErrContentAccessorRequired is returned when a content accessor is not provided.
	ErrContentAccessorRequired = errors.New("content accessor required")

	// ErrSnapshotsRequired is returned when a snapshot repository is not provided.
	ErrSnapshotsRequired = errors.New("snapshot repository required")

	// ErrDuplicateSource indicates a document whose source id is already ingested.
	ErrDuplicateSource = errors.New("source id already ingested")

	// ErrExcludedDocument indicates bootstrap sample content that must not be ingested.
	ErrExcludedDocument = errors.New("document matches exclusion list")
)
