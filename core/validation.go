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


package core

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - SourceID must be positive
//   - Title must not be empty
//   - Text must not be empty
//
// NOT validated:
//   - Vector (empty until an embedder runs over the corpus)
//   - Filename, OriginalFilename, Tags (optional metadata)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.SourceID <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidSourceID)
	}

	if doc.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if doc.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyText)
	}

	return nil
}

// ValidateOwner validates an Owner according to domain rules.
// Both ClientID and UserID must be positive.
func ValidateOwner(owner Owner) error {
	if owner.ClientID <= 0 {
		return fmt.Errorf("%w: client id must be positive", ErrInvalidOwner)
	}
	if owner.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidOwner)
	}
	return nil
}
