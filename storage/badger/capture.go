package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

// CaptureRepository implements storage.CaptureRepository for BadgerDB.
type CaptureRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.CaptureRepository = (*CaptureRepository)(nil)

// NewCaptureRepository creates a new CaptureRepository.
func NewCaptureRepository(backend *Backend) (*CaptureRepository, error) {
	idSeq, err := backend.GetSequence(captureIDSeq)
	if err != nil {
		return nil, err
	}

	return &CaptureRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *CaptureRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *CaptureRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddCaptures adds one or more captures to storage.
func (r *CaptureRepository) AddCaptures(ctx context.Context, captures ...*core.Capture) ([]*core.Capture, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Generate IDs and set timestamps
		for _, capture := range captures {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			capture.Id = core.ID(nextID)

			capture.InsertedAt = storageNow()
			capture.UpdatedAt = capture.InsertedAt
			if capture.CapturedAt.IsZero() {
				capture.CapturedAt = capture.InsertedAt
			}

			// Store primary record
			key := makeCaptureKey(capture.Id)
			value := storage.MarshalCapture(capture)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeCaptureDateKey(capture.CapturedAt, capture.Id)
			if err := tx.Set(dateKey, storage.MarshalID(capture.Id)); err != nil {
				return err
			}

			// Update status index
			statusKey := makeCaptureStatusKey(capture.Status, capture.Id)
			if err := tx.Set(statusKey, storage.MarshalID(capture.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return captures, err
}

// UpdateCaptures updates existing captures.
func (r *CaptureRepository) UpdateCaptures(ctx context.Context, captures ...*core.Capture) ([]*core.Capture, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, capture := range captures {
			key := makeCaptureKey(capture.Id)

			// Read old capture to detect changes
			old, err := readCapture(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			capture.UpdatedAt = storageNow()

			// Store updated record
			value := storage.MarshalCapture(capture)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index if capture time changed
			if !old.CapturedAt.Equal(capture.CapturedAt) {
				oldDateKey := makeCaptureDateKey(old.CapturedAt, old.Id)
				if err := tx.Delete(oldDateKey); err != nil {
					return err
				}
				newDateKey := makeCaptureDateKey(capture.CapturedAt, capture.Id)
				if err := tx.Set(newDateKey, storage.MarshalID(capture.Id)); err != nil {
					return err
				}
			}

			// Update status index if status changed
			if old.Status != capture.Status {
				if err := moveStatusIndex(tx, old.Status, capture.Status, capture.Id); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return captures, err
}

// DeleteCaptures removes captures by their IDs, along with any derived
// insight and index entries.
func (r *CaptureRepository) DeleteCaptures(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCaptureKey(id)

			// Read record to get metadata for index cleanup
			capture, err := readCapture(tx, key)
			if err != nil {
				return err
			}
			if capture == nil {
				return storage.ErrNotFound
			}

			// Delete from date index
			dateKey := makeCaptureDateKey(capture.CapturedAt, capture.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			// Delete from status index
			statusKey := makeCaptureStatusKey(capture.Status, capture.Id)
			if err := tx.Delete(statusKey); err != nil {
				return err
			}

			// Delete derived insight, if any
			if err := deleteInsightInTx(tx, id, false); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetCapture retrieves a single capture by ID.
func (r *CaptureRepository) GetCapture(ctx context.Context, id core.ID) (*core.Capture, error) {
	var result *core.Capture
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCaptureKey(id)
		var err error
		result, err = readCapture(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetCaptures retrieves multiple captures by their IDs.
func (r *CaptureRepository) GetCaptures(ctx context.Context, ids ...core.ID) ([]*core.Capture, error) {
	var result []*core.Capture
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCaptureKey(id)
			capture, err := readCapture(tx, key)
			if err != nil {
				return err
			}
			if capture != nil {
				result = append(result, capture)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetCapturesByStatus retrieves captures currently in the given status,
// ordered by capture ID ascending.
func (r *CaptureRepository) GetCapturesByStatus(ctx context.Context, status core.CaptureStatus) ([]*core.Capture, error) {
	var results []*core.Capture
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialCaptureStatusKey(status)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our status prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the ID from the index
			var captureID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				captureID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			captureKey := makeCaptureKey(captureID)
			capture, err := readCapture(tx, captureKey)
			if err != nil {
				return err
			}
			if capture != nil {
				results = append(results, capture)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentCaptures retrieves the N most recent captures, ordered by capture time descending.
func (r *CaptureRepository) GetRecentCaptures(ctx context.Context, limit int) ([]*core.Capture, error) {
	var results []*core.Capture
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent records first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key with the date prefix
		startKey := makePartialCaptureDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		// Prefix for capture date index keys
		prefix := []byte(captureDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the capture date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var captureID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				captureID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			captureKey := makeCaptureKey(captureID)
			capture, err := readCapture(tx, captureKey)
			if err != nil {
				return err
			}
			if capture != nil {
				results = append(results, capture)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// readCapture reads a capture from the transaction.
func readCapture(tx *badger.Txn, key []byte) (*core.Capture, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var capture *core.Capture
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		capture, unmarshalErr = storage.UnmarshalCapture(val)
		return unmarshalErr
	})
	return capture, err
}

// moveStatusIndex moves a capture between status index entries.
func moveStatusIndex(tx *badger.Txn, from, to core.CaptureStatus, id core.ID) error {
	oldKey := makeCaptureStatusKey(from, id)
	if err := tx.Delete(oldKey); err != nil {
		return err
	}
	newKey := makeCaptureStatusKey(to, id)
	return tx.Set(newKey, storage.MarshalID(id))
}
