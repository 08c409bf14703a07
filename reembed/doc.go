// Package reembed regenerates the embedding vectors of stored insights
// after an embedding-model change.
//
// Insights are walked in capture-id order and embedded in batches from
// their canonical text, with progress reporting, checkpointed resume,
// retry with exponential backoff, and vector normalization so results
// stay compatible with cosine similarity search.
package reembed
