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
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tessierlabs/dossier/core"
)

const manifestName = "manifest.json"

// textExtensions are the file types indexed as text. Anything else is
// reported as unreadable and therefore unindexable.
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// FSStore is a filesystem-backed Catalog and ContentAccessor.
// Documents live under base/client_<id>/user_<id>/ together with a JSON
// manifest listing the owner's entries. Locators are paths relative to
// the base directory.
type FSStore struct {
	base   string
	mu     sync.Mutex // serializes manifest updates
	logger *slog.Logger
}

var (
	_ Catalog         = (*FSStore)(nil)
	_ ContentAccessor = (*FSStore)(nil)
)

// FSOption configures an FSStore.
type FSOption func(*FSStore)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) FSOption {
	return func(s *FSStore) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewFSStore creates a filesystem store rooted at base.
// The base directory is created if it does not exist.
func NewFSStore(base string, opts ...FSOption) (*FSStore, error) {
	if base == "" {
		return nil, fmt.Errorf("base directory required")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}

	s := &FSStore{
		base:   base,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ownerDir returns the storage directory for an owner, relative to base.
func ownerDir(owner core.Owner) string {
	return filepath.Join(fmt.Sprintf("client_%d", owner.ClientID), fmt.Sprintf("user_%d", owner.UserID))
}

type manifest struct {
	NextID  int64           `json:"next_id"`
	Entries []manifestEntry `json:"entries"`
}

type manifestEntry struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	Tags             string    `json:"tags,omitempty"`
	FilePath         string    `json:"file_path"`
	CreatedAt        time.Time `json:"created_at"`
}

// List returns the owner's catalog entries in upload order.
// A missing manifest means the owner has no documents.
func (s *FSStore) List(ctx context.Context, owner core.Owner) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := core.ValidateOwner(owner); err != nil {
		return nil, err
	}

	m, err := s.loadManifest(owner)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(m.Entries))
	for _, me := range m.Entries {
		entries = append(entries, Entry{
			SourceID:         me.ID,
			Title:            me.Title,
			Filename:         me.Filename,
			OriginalFilename: me.OriginalFilename,
			Tags:             me.Tags,
			Locator:          me.FilePath,
			CreatedAt:        me.CreatedAt,
		})
	}
	return entries, nil
}

// Read returns the text behind a locator after verifying ownership.
func (s *FSStore) Read(ctx context.Context, owner core.Owner, locator string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := core.ValidateOwner(owner); err != nil {
		return "", err
	}

	clean := filepath.Clean(locator)
	rel, err := filepath.Rel(ownerDir(owner), clean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrForbidden, locator)
	}

	full := filepath.Join(s.base, clean)
	if !textExtensions[strings.ToLower(filepath.Ext(full))] {
		return "", fmt.Errorf("%w: %s", ErrUnreadable, filepath.Base(full))
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, locator)
		}
		return "", err
	}
	return string(data), nil
}

// SaveDocument writes a new document file for the owner and records it in
// the manifest. The stored filename is prefixed with the manifest id and
// a timestamp so repeated uploads of the same name never collide.
func (s *FSStore) SaveDocument(ctx context.Context, owner core.Owner, originalFilename, title, tags, content string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	if err := core.ValidateOwner(owner); err != nil {
		return Entry{}, err
	}
	if !textExtensions[strings.ToLower(filepath.Ext(originalFilename))] {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnreadable, originalFilename)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.base, ownerDir(owner))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Entry{}, err
	}

	m, err := s.loadManifestLocked(owner)
	if err != nil {
		return Entry{}, err
	}

	// The manifest id in the stored name keeps same-second uploads of
	// one filename from sharing a locator.
	m.NextID++
	now := time.Now().UTC()
	safeName := fmt.Sprintf("%d_%s_%s", m.NextID, now.Format("20060102_150405"),
		strings.ReplaceAll(originalFilename, " ", "_"))
	locator := filepath.Join(ownerDir(owner), safeName)

	if err := os.WriteFile(filepath.Join(s.base, locator), []byte(content), 0o644); err != nil {
		return Entry{}, err
	}

	if title == "" {
		title = strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	}

	me := manifestEntry{
		ID:               m.NextID,
		Title:            title,
		Filename:         safeName,
		OriginalFilename: originalFilename,
		Tags:             tags,
		FilePath:         locator,
		CreatedAt:        now,
	}
	m.Entries = append(m.Entries, me)

	if err := s.saveManifestLocked(owner, m); err != nil {
		return Entry{}, err
	}

	s.logger.Debug("document saved", "client", owner.ClientID, "user", owner.UserID, "file", safeName)

	return Entry{
		SourceID:         me.ID,
		Title:            me.Title,
		Filename:         me.Filename,
		OriginalFilename: me.OriginalFilename,
		Tags:             me.Tags,
		Locator:          me.FilePath,
		CreatedAt:        me.CreatedAt,
	}, nil
}

// RemoveDocument deletes a document file and its manifest entry.
func (s *FSStore) RemoveDocument(ctx context.Context, owner core.Owner, sourceID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := core.ValidateOwner(owner); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadManifestLocked(owner)
	if err != nil {
		return err
	}

	// Copy the removed entry before compacting: kept shares the backing
	// array with m.Entries, so compaction overwrites earlier slots.
	var removed manifestEntry
	found := false
	kept := m.Entries[:0]
	for i := range m.Entries {
		if m.Entries[i].ID == sourceID {
			removed = m.Entries[i]
			found = true
			continue
		}
		kept = append(kept, m.Entries[i])
	}
	if !found {
		return fmt.Errorf("%w: source id %d", ErrNotFound, sourceID)
	}

	if err := os.Remove(filepath.Join(s.base, removed.FilePath)); err != nil && !os.IsNotExist(err) {
		return err
	}

	m.Entries = kept
	return s.saveManifestLocked(owner, m)
}

func (s *FSStore) manifestPath(owner core.Owner) string {
	return filepath.Join(s.base, ownerDir(owner), manifestName)
}

func (s *FSStore) loadManifest(owner core.Owner) (*manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadManifestLocked(owner)
}

func (s *FSStore) loadManifestLocked(owner core.Owner) (*manifest, error) {
	data, err := os.ReadFile(s.manifestPath(owner))
	if err != nil {
		if os.IsNotExist(err) {
			return &manifest{}, nil
		}
		return nil, err
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("corrupt manifest for user %d: %w", owner.UserID, err)
	}
	return &m, nil
}

// saveManifestLocked writes the manifest via a temp file and rename so a
// crash never leaves a half-written manifest behind.
func (s *FSStore) saveManifestLocked(owner core.Owner, m *manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	path := s.manifestPath(owner)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
