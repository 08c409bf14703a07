// Package ai defines the pluggable extraction and embedding services used
// by the capture pipeline and the search engine.
//
// Two families of implementations exist: openai provides real backends over
// any OpenAI-compatible API, and fallback provides deterministic local
// substitutes that never fail. A FailoverProvider combines the two so that
// transient backend failures degrade to the fallback instead of failing a
// capture.
package ai
