// Package fallback provides deterministic, backend-free implementations of
// the ai interfaces. The extractor distills text with simple heuristics and
// the embedder derives a reproducible pseudo-random unit vector from the
// input, so identical input always yields identical output. Neither ever
// fails, which makes them both the degraded-mode substitute when a real
// backend is unavailable and a convenient basis for tests.
package fallback
