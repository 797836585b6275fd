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


// Package catalog defines the two external collaborators the retrieval
// engine consumes: the record catalog, which enumerates an owner's
// uploaded documents, and the content accessor, which resolves an opaque
// locator to raw text while enforcing ownership.
//
// Two implementations are provided:
//
//   - FSStore: documents stored under base/client_N/user_M/ with a JSON
//     manifest acting as the record catalog. Cross-owner locators are
//     rejected with ErrForbidden.
//   - Memory: in-memory implementation with failure injection for tests.
//
// The engine treats both collaborators as untrusted: any read failure
// skips the affected document and never aborts a corpus load.
package catalog
