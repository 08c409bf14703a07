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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sentinelkb/sentinel/ai"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

// ProcessorType identifies reembedding checkpoints in the checkpoint store.
const ProcessorType = "reembed"

// Config holds configuration for a reembedding run.
type Config struct {
	// BatchSize is the number of insights to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of insights)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder orchestrates reembedding every stored insight. Progress is
// checkpointed after each batch so an interrupted run resumes where it
// left off.
type Reembedder struct {
	insightRepository    storage.InsightRepository
	checkpointRepository storage.CheckpointRepository
	embedder             ai.Embedder
	config               *Config
	progress             io.Writer
	processor            *BatchProcessor
	iterator             *InsightIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(insightRepo storage.InsightRepository, checkpointRepo storage.CheckpointRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if insightRepo == nil {
		return nil, ErrInsightRepositoryRequired
	}
	if checkpointRepo == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		insightRepository:    insightRepo,
		checkpointRepository: checkpointRepo,
		embedder:             embedder,
		config:               config,
		progress:             progress,
		processor:            NewBatchProcessor(insightRepo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:             NewInsightIterator(insightRepo, config.BatchSize),
	}, nil
}

// Run executes the reembedding operation. Every insight with a capture
// id beyond the stored checkpoint is reembedded; a completed run resets
// the checkpoint so the next run starts from the beginning.
func (r *Reembedder) Run(ctx context.Context) error {
	afterID := core.ID(0)
	checkpoint, err := r.checkpointRepository.LoadCheckpoint(ctx, ProcessorType)
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if checkpoint != nil && checkpoint.LastId > 0 {
		afterID = checkpoint.LastId
		fmt.Fprintf(r.progress, "Resuming after capture id %d\n", afterID)
	}

	totalInsights, err := r.iterator.Count(ctx, afterID)
	if err != nil {
		return fmt.Errorf("failed to count insights: %w", err)
	}

	if totalInsights == 0 {
		fmt.Fprintf(r.progress, "No insights found to reembed (0 insights)\n")
		return r.resetCheckpoint(ctx)
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d insights (batch size: %d)\n",
		totalInsights, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalInsights, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	err = r.iterator.ForEach(ctx, afterID, func(insights []*core.Insight) error {
		if err := r.processor.Process(ctx, insights); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(insights)
		tracker.Update(processed)

		return r.saveCheckpoint(ctx, insights[len(insights)-1].CaptureId)
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	if err := r.resetCheckpoint(ctx); err != nil {
		return err
	}

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d insights in %v (%.1f insights/sec)\n",
		totalInsights, elapsed.Round(time.Second), float64(totalInsights)/elapsed.Seconds())

	return nil
}

func (r *Reembedder) saveCheckpoint(ctx context.Context, lastID core.ID) error {
	err := r.checkpointRepository.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: ProcessorType,
		LastId:        lastID,
	})
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

func (r *Reembedder) resetCheckpoint(ctx context.Context) error {
	return r.saveCheckpoint(ctx, 0)
}
