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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/core"
)

// InsightExtractor implements ai.InsightExtractor using OpenAI-compatible chat APIs.
type InsightExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// extraction is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type extraction struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	SourceTitle string   `json:"source_title"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
}

// newInsightExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newInsightExtractor(config *ai.Config) (*InsightExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/extraction
	// Token "none" works for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &InsightExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewInsightExtractor creates a new insight extractor using the provided configuration.
//
// Returns ai.InsightExtractor interface to enforce abstraction.
func NewInsightExtractor(config *ai.Config) (ai.InsightExtractor, error) {
	return newInsightExtractor(config)
}

// ExtractInsights distills text into a structured insight using an LLM.
func (x *InsightExtractor) ExtractInsights(ctx context.Context, text string, contentType core.ContentType) (*ai.Extraction, error) {
	systemPrompt := buildSystemPrompt(contentType)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result extraction
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := x.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			x.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			x.logger.Debug("no choices returned from model")
			return &ai.Extraction{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			x.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		x.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	x.logger.Debug("extracted insight",
		"keyPoints", len(result.KeyPoints),
		"actionItems", len(result.ActionItems),
		"tags", len(result.Tags))

	return &ai.Extraction{
		Title:       capRunes(strings.TrimSpace(result.Title), 100),
		Summary:     capRunes(strings.TrimSpace(result.Summary), 500),
		KeyPoints:   capSlice(result.KeyPoints, 5),
		ActionItems: capSlice(result.ActionItems, 3),
		SourceTitle: strings.TrimSpace(result.SourceTitle),
		Author:      strings.TrimSpace(result.Author),
		Tags:        result.Tags,
	}, nil
}

// capRunes truncates s to at most n runes. The schema asks the model for
// the same caps; this enforces them when the model ignores the schema.
func capRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// capSlice drops empty entries and truncates to at most n items.
func capSlice(items []string, n int) []string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kept = append(kept, item)
		if len(kept) == n {
			break
		}
	}
	return kept
}
