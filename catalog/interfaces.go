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


package catalog

import (
	"context"
	"time"

	"github.com/tessierlabs/dossier/core"
)

// Entry describes one uploaded document as known to the record catalog.
type Entry struct {
	SourceID         int64
	Title            string
	Filename         string
	OriginalFilename string
	Tags             string
	Locator          string // opaque file locator understood by the content accessor
	CreatedAt        time.Time
}

// Catalog enumerates the documents uploaded by an owner.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// List returns the catalog entries for the owner, in upload order.
	// An owner with no uploads yields an empty slice, not an error.
	List(ctx context.Context, owner core.Owner) ([]Entry, error)
}

// ContentAccessor resolves a locator to the raw text of a document.
// Implementations must be safe for concurrent use.
type ContentAccessor interface {
	// Read returns the text behind the locator.
	// Returns ErrForbidden if the locator does not belong to the owner,
	// ErrNotFound if it does not resolve, and ErrUnreadable for content
	// that cannot be indexed as text.
	Read(ctx context.Context, owner core.Owner, locator string) (string, error)
}
