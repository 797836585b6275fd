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

import (
	"strings"

	"github.com/tessierlabs/dossier/core"
)

// The exclusion list names the bootstrap sample documents created for
// every new account. They exist so the dashboard is not empty on first
// login and must never surface in retrieval results. Matching is
// case-insensitive on trimmed title, stored filename and original
// filename, and is applied both at ingestion and again at query time.
var (
	excludedTitles = map[string]bool{
		"mes notes administratives": true,
		"procédures internes":       true,
		"mes documents personnels":  true,
		"suivi de mes projets":      true,
	}

	excludedFilenames = map[string]bool{
		"mes_notes_admin.txt":          true,
		"procédures_internes.txt":      true,
		"mes_documents_personnels.txt": true,
		"suivi_projets.txt":            true,
	}
)

func normalizeForExclusion(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsExcluded reports whether a document identified by its title, stored
// filename and original filename is bootstrap sample content.
// Stored filenames carry a timestamp prefix, so the filename check also
// matches on suffix.
func IsExcluded(title, filename, originalFilename string) bool {
	if excludedTitles[normalizeForExclusion(title)] {
		return true
	}
	for _, name := range []string{filename, originalFilename} {
		name = normalizeForExclusion(name)
		if name == "" {
			continue
		}
		if excludedFilenames[name] {
			return true
		}
		for excluded := range excludedFilenames {
			if strings.HasSuffix(name, "_"+excluded) {
				return true
			}
		}
	}
	return false
}

// IsExcludedDocument reports whether an ingested document matches the
// exclusion list. Used as the defensive query-time check.
func IsExcludedDocument(doc *core.Document) bool {
	if doc == nil {
		return false
	}
	return IsExcluded(doc.Title, doc.Filename, doc.OriginalFilename)
}
