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


package dossier

import (
	"log/slog"

	"github.com/tessierlabs/dossier/ai"
	"github.com/tessierlabs/dossier/ai/openai"
	"github.com/tessierlabs/dossier/catalog"
	"github.com/tessierlabs/dossier/corpus"
	"github.com/tessierlabs/dossier/engine"
	"github.com/tessierlabs/dossier/storage"
	"github.com/tessierlabs/dossier/storage/badger"
)

// System wires the filesystem catalog, the snapshot store and the
// query engine into one handle. It is the assembly used by the CLI;
// library users composing their own catalog or storage work with the
// packages directly.
type System struct {
	backend   *badger.Backend
	snapshots storage.SnapshotRepository
	files     *catalog.FSStore
	store     *corpus.Store
	engine    *engine.Engine
	logger    *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig *ai.Config
	embed    bool
}

// WithAIConfig enables vector scoring with the given embedding
// configuration. Without it the system runs lexical-only.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = config
		o.embed = true
	}
}

// NewSystem opens the snapshot database at dbPath and the document
// tree at dataDir.
func NewSystem(dbPath, dataDir string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return nil, err
	}
	snapshots := badger.NewSnapshotRepository(backend)

	files, err := catalog.NewFSStore(dataDir)
	if err != nil {
		backend.Close()
		return nil, err
	}

	store, err := corpus.NewStore(files, files, snapshots)
	if err != nil {
		backend.Close()
		return nil, err
	}

	engineOpts := []engine.Option{}
	if options.embed {
		embedder, err := openai.NewEmbedder(options.aiConfig)
		if err != nil {
			store.Release()
			backend.Close()
			return nil, err
		}
		engineOpts = append(engineOpts, engine.WithEmbedder(embedder))
	}

	eng, err := engine.New(store, engineOpts...)
	if err != nil {
		store.Release()
		backend.Close()
		return nil, err
	}

	return &System{
		backend:   backend,
		snapshots: snapshots,
		files:     files,
		store:     store,
		engine:    eng,
		logger:    slog.Default(),
	}, nil
}

func (s *System) Close() error {
	s.store.Release()

	if err := s.snapshots.Close(); err != nil {
		s.logger.Error("error closing snapshot repository", "err", err)
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *System) Engine() *engine.Engine {
	return s.engine
}

func (s *System) Files() *catalog.FSStore {
	return s.files
}

func (s *System) SnapshotRepository() storage.SnapshotRepository {
	return s.snapshots
}
