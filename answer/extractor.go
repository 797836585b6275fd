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


package answer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tessierlabs/dossier/core"
	"github.com/tessierlabs/dossier/search"
)

// Extraction thresholds. Lines and paragraphs below their score
// threshold never reach the answer, regardless of how few candidates
// exist.
const (
	minLineLength      = 15
	lineScoreThreshold = 20
	keywordBonus       = 10
	maxLinesPerDoc     = 2
	maxDocBlocks       = 3

	minParagraphLength      = 50
	maxParagraphLength      = 500
	paragraphScoreThreshold = 15

	excerptLength       = 300
	sentenceTrimMinimum = 150
)

// domainKeywords boost lines that carry procedural or contractual
// signal. French terms first, their English equivalents after.
var domainKeywords = []string{
	"important", "déclaration", "procédure", "couvre", "garantit",
	"exclusion", "obligatoire", "nécessaire", "étape", "processus",
	"condition", "règle",
	"statement", "procedure", "covers", "guarantees",
	"mandatory", "necessary", "step", "process", "rule",
}

type scoredLine struct {
	text  string
	score float64
}

// Extract derives a best-effort answer from up to three ranked
// documents. The second return value is false when no content
// satisfied any extraction rule; the caller turns that into a
// not-found response.
func Extract(question string, docs []core.Document) (string, bool) {
	if len(docs) == 0 {
		return "", false
	}
	if len(docs) > maxDocBlocks {
		docs = docs[:maxDocBlocks]
	}

	questionWords := search.TokenSet(question)
	if len(questionWords) == 0 {
		return "", false
	}

	var blocks []string
	for i := range docs {
		if skipWeakOverlap(questionWords, &docs[i]) {
			continue
		}
		lines := scoreLines(questionWords, docs[i].Text)
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, formatBlock(docs[i].Title, lines))
	}
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n\n"), true
	}

	// No document yielded qualifying lines: paragraph-level selection
	// on the single best document.
	if para, ok := bestParagraph(questionWords, docs[0].Text); ok {
		return fmt.Sprintf("📄 **%s** :\n%s", docs[0].Title, para), true
	}

	if excerpt := leadingExcerpt(docs[0].Text); excerpt != "" {
		return fmt.Sprintf("📄 **Extrait pertinent :** %s", excerpt), true
	}
	return "", false
}

// skipWeakOverlap guards against coincidental matches: when the
// question has more than 3 distinct words, a document must share at
// least 2 of them to contribute.
func skipWeakOverlap(questionWords map[string]struct{}, doc *core.Document) bool {
	if len(questionWords) <= 3 {
		return false
	}
	docWords := search.TokenSet(doc.Title + " " + doc.Text)
	shared := 0
	for word := range questionWords {
		if _, ok := docWords[word]; ok {
			shared++
			if shared >= 2 {
				return false
			}
		}
	}
	return true
}

// scoreLines returns the top qualifying lines of the text, best first.
func scoreLines(questionWords map[string]struct{}, text string) []scoredLine {
	var kept []scoredLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if len([]rune(line)) < minLineLength {
			continue
		}

		lineWords := search.TokenSet(line)
		overlap := 0
		for word := range questionWords {
			if _, ok := lineWords[word]; ok {
				overlap++
			}
		}
		score := float64(overlap) / float64(len(questionWords)) * 100

		lower := strings.ToLower(line)
		for _, keyword := range domainKeywords {
			if strings.Contains(lower, keyword) {
				score += keywordBonus
			}
		}

		if score >= lineScoreThreshold {
			kept = append(kept, scoredLine{text: line, score: score})
		}
	}

	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].score > kept[b].score
	})
	if len(kept) > maxLinesPerDoc {
		kept = kept[:maxLinesPerDoc]
	}
	return kept
}

func formatBlock(title string, lines []scoredLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 **%s** :", title)
	for _, line := range lines {
		b.WriteString("\n• ")
		b.WriteString(line.text)
	}
	return b.String()
}

// bestParagraph scores blank-line-separated paragraphs of usable
// length by question-word overlap ratio.
func bestParagraph(questionWords map[string]struct{}, text string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, raw := range strings.Split(text, "\n\n") {
		para := strings.TrimSpace(raw)
		length := len([]rune(para))
		if length < minParagraphLength || length > maxParagraphLength {
			continue
		}

		paraWords := search.TokenSet(para)
		overlap := 0
		for word := range questionWords {
			if _, ok := paraWords[word]; ok {
				overlap++
			}
		}
		score := float64(overlap) / float64(len(questionWords)) * 100
		if score > bestScore {
			best = para
			bestScore = score
		}
	}

	if bestScore < paragraphScoreThreshold {
		return "", false
	}
	return best, true
}

// leadingExcerpt takes the first characters of the text, trimmed back
// to the last sentence boundary when one exists far enough in.
func leadingExcerpt(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	runes := []rune(trimmed)
	if len(runes) <= excerptLength {
		return trimmed
	}
	excerpt := runes[:excerptLength]

	cut := -1
	for i, r := range excerpt {
		if r == '.' || r == '!' || r == '?' {
			cut = i
		}
	}
	if cut > sentenceTrimMinimum {
		return string(excerpt[:cut+1])
	}
	return string(excerpt) + "..."
}
