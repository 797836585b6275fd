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
	"fmt"
	"sync"

	"github.com/tessierlabs/dossier/core"
)

// Memory is an in-memory Catalog and ContentAccessor used in tests and
// small setups. It supports failure injection per locator.
type Memory struct {
	mu       sync.RWMutex
	entries  map[core.Owner][]Entry
	texts    map[core.Owner]map[string]string
	failures map[string]error
}

var (
	_ Catalog         = (*Memory)(nil)
	_ ContentAccessor = (*Memory)(nil)
)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries:  make(map[core.Owner][]Entry),
		texts:    make(map[core.Owner]map[string]string),
		failures: make(map[string]error),
	}
}

// Add registers an entry and its text for an owner. When the entry has
// no locator, one is derived from the source id.
func (m *Memory) Add(owner core.Owner, entry Entry, text string) Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.Locator == "" {
		entry.Locator = fmt.Sprintf("mem/%d/%d", owner.UserID, entry.SourceID)
	}
	m.entries[owner] = append(m.entries[owner], entry)
	if m.texts[owner] == nil {
		m.texts[owner] = make(map[string]string)
	}
	m.texts[owner][entry.Locator] = text
	return entry
}

// Remove drops the entry with the given source id for an owner.
func (m *Memory) Remove(owner core.Owner, sourceID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[owner][:0]
	for _, e := range m.entries[owner] {
		if e.SourceID == sourceID {
			delete(m.texts[owner], e.Locator)
			continue
		}
		kept = append(kept, e)
	}
	m.entries[owner] = kept
}

// Clear drops all entries for an owner.
func (m *Memory) Clear(owner core.Owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, owner)
	delete(m.texts, owner)
}

// FailRead makes subsequent reads of the locator return err.
func (m *Memory) FailRead(locator string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[locator] = err
}

// List implements Catalog.
func (m *Memory) List(ctx context.Context, owner core.Owner) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, len(m.entries[owner]))
	copy(out, m.entries[owner])
	return out, nil
}

// Read implements ContentAccessor.
func (m *Memory) Read(ctx context.Context, owner core.Owner, locator string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.failures[locator]; ok {
		return "", err
	}

	text, ok := m.texts[owner][locator]
	if !ok {
		// A locator known to any other owner is a cross-owner access.
		for other, texts := range m.texts {
			if other == owner {
				continue
			}
			if _, exists := texts[locator]; exists {
				return "", fmt.Errorf("%w: %s", ErrForbidden, locator)
			}
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, locator)
	}
	return text, nil
}
