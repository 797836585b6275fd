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


// Package ai provides the embedding abstraction used by dossier for
// semantic scoring.
//
// The Embedder interface decouples the retrieval engine from any
// concrete embedding provider; the engine treats it as an optional
// capability and degrades to lexical scoring when none is configured or
// when a call fails.
//
// # Implementation packages
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//     (Ollama, LocalAI, vLLM, OpenAI itself)
//   - ai/mock: deterministic test double with behavior injection
//
// Public constructors (openai.NewEmbedder) return the ai.Embedder
// interface to enforce abstraction. Test constructors
// (mock.NewMockEmbedder) return the concrete type so tests can inject
// behavior and make assertions.
package ai
