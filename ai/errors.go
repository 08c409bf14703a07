package ai

import "errors"

var (
	// ErrPrimaryProviderRequired is returned when a primary provider is not provided.
	ErrPrimaryProviderRequired = errors.New("primary provider required")

	// ErrFallbackProviderRequired is returned when a fallback provider is not provided.
	ErrFallbackProviderRequired = errors.New("fallback provider required")
)
