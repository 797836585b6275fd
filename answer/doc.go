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


// Package answer extracts a best-effort answer snippet from ranked
// documents. Extraction is tiered: qualifying scored lines formatted as
// titled blocks, then the best paragraph of the top document, then a
// leading excerpt. Each tier has a score gate; failing all tiers means
// no answer, never a fabricated one.
package answer
