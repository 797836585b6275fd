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

import "errors"

var (
	// ErrNotFound indicates the locator does not resolve to a document.
	ErrNotFound = errors.New("document not found")

	// ErrForbidden indicates the locator resolves outside the owner's space.
	ErrForbidden = errors.New("document does not belong to owner")

	// ErrUnreadable indicates content that cannot be indexed as text.
	ErrUnreadable = errors.New("content is not readable text")
)
