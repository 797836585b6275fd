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


package search

import "github.com/tessierlabs/dossier/core"

// RankMonitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate scores during a rank.
type RankMonitor interface {
	Start(question string)
	AfterLexicalScores(scores []float64)
	AfterVectorScores(scores []float64)
	VectorUnavailable(err error)
	Finish(results []core.RankedResult)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                 {}
func (n *noopMonitor) AfterLexicalScores(_ []float64) {}
func (n *noopMonitor) AfterVectorScores(_ []float64)  {}
func (n *noopMonitor) VectorUnavailable(_ error)      {}
func (n *noopMonitor) Finish(_ []core.RankedResult)   {}
