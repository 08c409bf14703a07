// Copyright 2025 Poiesic Systems
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


package fallback

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/core"
)

const (
	maxTitleRunes   = 100
	maxSummaryRunes = 500
	maxKeyPoints    = 5
	maxTags         = 5

	// Title and summary used when the input is empty after cleaning.
	emptyTitle   = "No content"
	emptySummary = "No content captured."
)

var wordSplit = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// stopWords are filtered out of suggested tags.
var stopWords = map[string]bool{
	"the": true, "and": true, "with": true, "that": true, "this": true,
	"from": true, "they": true, "you": true, "your": true, "for": true,
	"are": true, "was": true, "were": true, "but": true, "not": true,
	"have": true, "has": true, "had": true, "about": true, "into": true,
	"over": true, "when": true, "what": true, "how": true, "why": true,
	"who": true,
}

// Extractor distills text with deterministic heuristics: leading lines
// become the title and key points, leading text becomes the summary, and
// frequent long words become suggested tags. It never fails, including on
// empty input.
type Extractor struct{}

var _ ai.InsightExtractor = (*Extractor)(nil)

// NewExtractor creates a deterministic fallback extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractInsights produces a heuristic extraction from the text.
// The content type is ignored; heuristics don't differ by content kind.
func (x *Extractor) ExtractInsights(ctx context.Context, text string, contentType core.ContentType) (*ai.Extraction, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &ai.Extraction{
			Title:   emptyTitle,
			Summary: emptySummary,
		}, nil
	}

	lines := meaningfulLines(trimmed)

	title := truncateRunes(trimmed, maxTitleRunes)
	if len(lines) > 0 {
		title = truncateRunes(lines[0], maxTitleRunes)
	}

	keyPoints := lines
	if len(keyPoints) > maxKeyPoints {
		keyPoints = keyPoints[:maxKeyPoints]
	}

	return &ai.Extraction{
		Title:     title,
		Summary:   truncateRunes(trimmed, maxSummaryRunes),
		KeyPoints: keyPoints,
		Tags:      suggestTags(trimmed),
	}, nil
}

// meaningfulLines splits text into trimmed lines, dropping empty and noise
// lines.
func meaningfulLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isNoiseLine(line) || isOnlyPunctuation(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isNoiseLine reports whether a short line is link or social-media
// boilerplate rather than content.
func isNoiseLine(line string) bool {
	if len([]rune(line)) >= 50 {
		return false
	}
	lower := strings.ToLower(line)
	for _, pattern := range []string{"http", "www.", "retweet", "share", "follow", "@", "#"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// isOnlyPunctuation reports whether every rune in the line is punctuation
// or a symbol.
func isOnlyPunctuation(line string) bool {
	for _, r := range line {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// suggestTags picks up to maxTags distinct lowercase keywords longer than
// three characters, preserving first-occurrence order.
func suggestTags(text string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, word := range wordSplit.Split(text, -1) {
		word = strings.ToLower(strings.TrimSpace(word))
		if len(word) <= 3 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		tags = append(tags, word)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

// truncateRunes caps s at n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
