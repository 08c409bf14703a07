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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// ExtractorHost is the base URL for the insight extraction service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	ExtractorHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// ExtractorModel is the model identifier to use for insight extraction.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	ExtractorModel string

	// Token is the API token sent to both services. "none" works for local
	// OpenAI-compatible servers that don't require authentication.
	Token string

	// CallTimeout bounds each individual backend call before the failover
	// layer gives up on the primary and serves the deterministic fallback.
	// Default: 30s
	CallTimeout time.Duration

	// MaxAttempts is the number of attempts the failover layer gives the
	// primary backend before falling back. Default: 2
	MaxAttempts int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithExtractorHost sets the extraction service host URL.
func WithExtractorHost(host string) ConfigOption {
	return func(c *Config) {
		c.ExtractorHost = host
	}
}

// WithHost sets both embedding and extractor hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.ExtractorHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithExtractorModel sets the extraction model identifier.
func WithExtractorModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExtractorModel = model
	}
}

// WithToken sets the API token for both services.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithCallTimeout sets the per-call timeout for backend requests.
func WithCallTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.CallTimeout = timeout
	}
}

// WithMaxAttempts sets the number of attempts given to the primary backend.
func WithMaxAttempts(attempts int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = attempts
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and extraction use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		ExtractorHost:  defaultHost,
		EmbeddingModel: "embeddinggemma",
		ExtractorModel: "qwen2.5:3b",
		Token:          "none",
		CallTimeout:    30 * time.Second,
		MaxAttempts:    2,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.ExtractorHost != "" && !strings.HasSuffix(c.ExtractorHost, "/v1") {
		c.ExtractorHost = strings.TrimSuffix(c.ExtractorHost, "/")
		c.ExtractorHost = c.ExtractorHost + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.ExtractorHost == "" {
		return errors.New("ai config: ExtractorHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ExtractorModel == "" {
		return errors.New("ai config: ExtractorModel is required")
	}
	if c.CallTimeout <= 0 {
		return errors.New("ai config: CallTimeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return errors.New("ai config: MaxAttempts must be at least 1")
	}
	return nil
}
