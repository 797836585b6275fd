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
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/tessierlabs/dossier/catalog"
	"github.com/tessierlabs/dossier/core"
	"github.com/tessierlabs/dossier/storage"
)

const defaultReadTimeout = 10 * time.Second

// Store builds, persists and restores one owner's corpus from the
// record catalog and content accessor. Content fetches run concurrently
// on a worker pool; an individual read failure skips that document and
// never aborts the load.
type Store struct {
	catalog     catalog.Catalog
	content     catalog.ContentAccessor
	snapshots   storage.SnapshotRepository
	pool        *ants.Pool
	readTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent content fetches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithReadTimeout sets the per-document content fetch timeout.
// Default is 10 seconds.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Store) error {
		if timeout > 0 {
			s.readTimeout = timeout
		}
		return nil
	}
}

// NewStore creates a corpus store.
func NewStore(
	cat catalog.Catalog,
	content catalog.ContentAccessor,
	snapshots storage.SnapshotRepository,
	opts ...Option,
) (*Store, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}
	if content == nil {
		return nil, ErrContentAccessorRequired
	}
	if snapshots == nil {
		return nil, ErrSnapshotsRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Store{
		catalog:     cat,
		content:     content,
		snapshots:   snapshots,
		pool:        pool,
		readTimeout: defaultReadTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// Release releases the worker pool.
// The store should not be used after calling Release.
func (s *Store) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Load enumerates the owner's catalog, fetches the text of every
// non-excluded entry and returns the resulting documents in catalog
// order, plus the total number of catalog entries seen.
//
// Excluded entries are dropped before any content fetch. Individual
// read failures are logged and skipped.
func (s *Store) Load(ctx context.Context, owner core.Owner) ([]core.Document, int, error) {
	entries, err := s.catalog.List(ctx, owner)
	if err != nil {
		return nil, 0, err
	}

	// Slot per entry keeps catalog order regardless of fetch completion order.
	texts := make([]string, len(entries))
	failed := make([]bool, len(entries))

	var wg sync.WaitGroup
	for i := range entries {
		if IsExcluded(entries[i].Title, entries[i].Filename, entries[i].OriginalFilename) {
			s.logger.Debug("skipping excluded entry", "user", owner.UserID, "title", entries[i].Title)
			failed[i] = true
			continue
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()

			readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
			defer cancel()

			text, err := s.content.Read(readCtx, owner, entries[i].Locator)
			if err != nil {
				s.logger.Warn("skipping unreadable document",
					"user", owner.UserID, "file", entries[i].Filename, "err", err)
				failed[i] = true
				return
			}
			texts[i] = text
		}
		if err := s.pool.Submit(task); err != nil {
			// Pool exhausted or released; run inline rather than dropping the document.
			task()
		}
	}
	wg.Wait()

	docs := make([]core.Document, 0, len(entries))
	for i, entry := range entries {
		if failed[i] || texts[i] == "" {
			continue
		}
		docs = append(docs, core.Document{
			SourceID:         entry.SourceID,
			Title:            entry.Title,
			Filename:         entry.Filename,
			OriginalFilename: entry.OriginalFilename,
			Tags:             entry.Tags,
			Text:             texts[i],
		})
	}

	return docs, len(entries), nil
}

// Rebuild resets and re-ingests the owner's corpus from the catalog.
// This is always a full rebuild: catalog entries may have been deleted
// or edited since the last ingestion, and an incremental merge could
// keep serving removed content. Returns the fresh corpus and the total
// catalog entry count.
func (s *Store) Rebuild(ctx context.Context, owner core.Owner) (*Corpus, int, error) {
	docs, total, err := s.Load(ctx, owner)
	if err != nil {
		return nil, 0, err
	}

	c := New()
	for _, doc := range docs {
		if err := c.Add(doc); err != nil {
			s.logger.Warn("skipping document during rebuild",
				"user", owner.UserID, "source_id", doc.SourceID, "err", err)
		}
	}

	s.logger.Info("corpus rebuilt", "user", owner.UserID, "documents", c.Len(), "catalog_entries", total)
	return c, total, nil
}

// Persist writes the owner's corpus as the durable snapshot pair.
// A persistence failure is returned to the caller: silently losing an
// index update would be a correctness issue.
func (s *Store) Persist(ctx context.Context, owner core.Owner, c *Corpus) error {
	snapshot := &core.Snapshot{
		Owner:             owner,
		Documents:         c.Documents(),
		IngestedSourceIDs: c.SourceIDs(),
		SavedAt:           time.Now().UTC(),
	}
	return s.snapshots.SaveSnapshot(ctx, snapshot)
}

// Restore loads the owner's persisted snapshot into a fresh corpus.
// An absent, partial or corrupt snapshot yields an empty corpus, never
// an error: the caller rebuilds from the catalog instead.
func (s *Store) Restore(ctx context.Context, owner core.Owner) *Corpus {
	c := New()

	snapshot, err := s.snapshots.LoadSnapshot(ctx, owner)
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotCorrupt) {
			s.logger.Warn("persisted snapshot corrupt, treating as absent", "user", owner.UserID, "err", err)
		} else {
			s.logger.Warn("failed to load persisted snapshot", "user", owner.UserID, "err", err)
		}
		return c
	}
	if snapshot == nil {
		return c
	}

	for _, doc := range snapshot.Documents {
		if err := c.Add(doc); err != nil {
			s.logger.Warn("skipping document during restore",
				"user", owner.UserID, "source_id", doc.SourceID, "err", err)
		}
	}
	c.markIngested(snapshot.IngestedSourceIDs...)

	s.logger.Info("corpus restored from snapshot",
		"user", owner.UserID, "documents", c.Len(), "saved_at", snapshot.SavedAt)
	return c
}
