package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

const (
	defaultSequenceBandwidth = 100

	// Write transactions that lose badger's optimistic conflict check
	// are retried this many times before the error surfaces.
	writeConflictRetries = 5
)

// Backend wraps a BadgerDB instance and provides low-level operations.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// storageNow returns the current time at the resolution the serialized
// records carry. Stamping at full resolution would make the value a
// repository returns compare unequal to the one a reader loads back.
func storageNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
//
// Write transactions retry on badger.ErrConflict with a fresh
// transaction: every write path here re-reads its records (or
// regenerates its IDs) inside fn, so a rerun converges.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	attempts := 1
	if isWrite {
		attempts += writeConflictRetries
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = b.runTx(fn, isWrite)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (b *Backend) runTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// GetSequence returns a BadgerDB sequence for generating sequential IDs.
func (b *Backend) GetSequence(name string) (*badger.Sequence, error) {
	return b.db.GetSequence([]byte(name), defaultSequenceBandwidth)
}

// WithTransaction executes a function within a transaction.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return b.WithTx(func(tx *badger.Txn) error {
		// Execute the callback function
		if err := fn(ctx); err != nil {
			return err
		}
		// Commit the transaction
		return tx.Commit()
	}, true)
}

// FindSimilar finds insights similar to the given vector by exhaustive
// cosine similarity scan over all stored insights with embeddings.
func (b *Backend) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	var results []*core.SearchResult

	err := b.WithTx(func(tx *badger.Txn) error {
		// Iterate through all insight records
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(insightRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip tag index keys, which share the insight prefix
			if bytes.HasPrefix(key, []byte(insightTagPrefix)) {
				continue
			}

			var insight *core.Insight
			err := item.Value(func(val []byte) error {
				var err error
				insight, err = storage.UnmarshalInsight(val)
				return err
			})
			if err != nil {
				return err
			}
			if insight == nil {
				continue
			}

			// Skip insights without embeddings
			if len(insight.Vector) == 0 {
				continue
			}

			similarity := cosineSimilarity(vector, insight.Vector)

			// Filter by threshold
			if similarity >= minSimilarity {
				results = append(results, &core.SearchResult{
					Insight: insight,
					Score:   similarity,
				})
			}
		}

		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending; ties go to the most recently processed
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return b.Insight.ProcessedAt.Compare(a.Insight.ProcessedAt)
	})

	// Limit to maxHits
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// cosineSimilarity calculates the cosine similarity of two vectors.
// Returns 0 if the vectors differ in dimension or either has zero
// magnitude.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := 0; i < len(a); i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
