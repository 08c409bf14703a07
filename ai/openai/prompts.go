package openai

import (
	"fmt"

	"github.com/sentinelkb/sentinel/core"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "title": {
      "type": "string",
      "maxLength": 100
    },
    "summary": {
      "type": "string",
      "maxLength": 500
    },
    "key_points": {
      "type": "array",
      "items": {"type": "string"},
      "maxItems": 5
    },
    "action_items": {
      "type": "array",
      "items": {"type": "string"},
      "maxItems": 3
    },
    "source_title": {
      "type": "string"
    },
    "author": {
      "type": "string"
    },
    "tags": {
      "type": "array",
      "items": {"type": "string", "pattern": "^[a-z0-9]+([ -][a-z0-9]+)*$"},
      "maxItems": 5
    }
  },
  "required": ["title", "summary", "key_points", "action_items", "tags"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Distill the given content into a structured insight and return it as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The title is a concise headline, at most 100 characters.
- The summary condenses the content, at most 500 characters.
- Key points are the main takeaways, at most 5, each a single sentence.
- Action items are concrete follow-ups the content suggests, at most 3. Use [] when there are none.
- Tags are lowercase labels, 1-2 words each, at most 5. Use [] when nothing fits.
- Include source_title and author only when the content states them. Do not guess.
- Base everything strictly on the content. Do not hallucinate.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

%s

Example:
Input: "Shipping daily builds trust. Teams that release every day recover from mistakes faster."
Output:
{
  "title": "Shipping daily builds trust",
  "summary": "Teams that release every day build trust and recover from mistakes faster.",
  "key_points": ["Daily releases build trust", "Frequent shippers recover from mistakes faster"],
  "action_items": ["Move the team to a daily release cadence"],
  "tags": ["shipping", "release cadence"]
}`

// typeInstructions returns the content-type-specific guidance appended to
// the system prompt.
func typeInstructions(contentType core.ContentType) string {
	switch contentType {
	case core.ContentTypeTweet:
		return "The content is a tweet. Extract the main point, the author if named, and any key takeaways."
	case core.ContentTypeArticle:
		return "The content is an article. Summarize it, extract the key points, and surface any actionable advice."
	case core.ContentTypeCode:
		return "The content is code. Explain what it does, its purpose, and any important technical details."
	default:
		return "Extract the key information and insights from the content."
	}
}

// buildSystemPrompt creates the system prompt for a content type.
func buildSystemPrompt(contentType core.ContentType) string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		typeInstructions(contentType))
}
