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


package ingestion

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// noiseLineMaxRunes is the length below which a line carrying a noise
// marker is treated as boilerplate rather than content.
const noiseLineMaxRunes = 50

var (
	urlPattern     = regexp.MustCompile(`https?://\S+|\bwww\.\S+`)
	hashtagPattern = regexp.MustCompile(`#\w+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	spacePattern   = regexp.MustCompile(`[ \t]+`)

	// Social boilerplate markers. Short lines containing one of these
	// carry no content worth extracting.
	noiseMarkers = []string{"retweet", "share", "follow"}
)

// CleanContent strips capture noise before extraction: URL, hashtag and
// mention tokens are removed, whitespace is collapsed per line, and
// residual lines that are punctuation-only or short social boilerplate
// are dropped. The result is never longer than the input; empty input
// yields empty output.
func CleanContent(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = urlPattern.ReplaceAllString(line, "")
		line = hashtagPattern.ReplaceAllString(line, "")
		line = mentionPattern.ReplaceAllString(line, "")
		line = spacePattern.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}
		if isOnlyPunctuation(line) {
			continue
		}
		if isNoiseLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// isNoiseLine reports whether a short line carries a boilerplate marker.
func isNoiseLine(line string) bool {
	if utf8.RuneCountInString(line) >= noiseLineMaxRunes {
		return false
	}
	lower := strings.ToLower(line)
	for _, marker := range noiseMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// isOnlyPunctuation reports whether a line has no letters or digits.
func isOnlyPunctuation(line string) bool {
	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
