package badger

import (
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/sentinelkb/sentinel/core"
	"github.com/sentinelkb/sentinel/storage"
)

// TagRepository implements storage.TagRepository for BadgerDB.
type TagRepository struct {
	backend *Backend
}

var _ storage.TagRepository = (*TagRepository)(nil)

// NewTagRepository creates a new TagRepository.
func NewTagRepository(backend *Backend) (*TagRepository, error) {
	return &TagRepository{
		backend: backend,
	}, nil
}

// Close releases resources. TagRepository has no resources to release.
func (r *TagRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TagRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetOrCreateTags finds or creates a tag for each name. Names are
// normalized before use; tag IDs derive from the normalized name, so
// concurrent creation attempts converge on the same tag.
func (r *TagRepository) GetOrCreateTags(ctx context.Context, names []string) ([]*core.Tag, error) {
	normalized := core.NormalizeTags(names)
	if len(normalized) == 0 {
		return nil, nil
	}

	var results []*core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, name := range normalized {
			id := core.TagID(name)
			key := makeTagKey(id)

			tag, err := readTag(tx, key)
			if err != nil {
				return err
			}
			if tag == nil {
				now := storageNow()
				tag = &core.Tag{
					Id:         id,
					Name:       name,
					InsertedAt: now,
					UpdatedAt:  now,
				}
				value := storage.MarshalTag(tag)
				if err := tx.Set(key, value); err != nil {
					return err
				}
			}
			results = append(results, tag)
		}
		return tx.Commit()
	}, true)

	return results, err
}

// GetTag retrieves a single tag by ID.
func (r *TagRepository) GetTag(ctx context.Context, id core.ID) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTagKey(id)
		var err error
		result, err = readTag(tx, key)
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

// ListTags retrieves all tags, ordered by name.
func (r *TagRepository) ListTags(ctx context.Context) ([]*core.Tag, error) {
	var results []*core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tagRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var tag *core.Tag
			err := iter.Item().Value(func(val []byte) error {
				var err error
				tag, err = storage.UnmarshalTag(val)
				return err
			})
			if err != nil {
				return err
			}
			if tag != nil {
				results = append(results, tag)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Tag) int {
		return strings.Compare(a.Name, b.Name)
	})

	return results, nil
}

// readTag reads a tag from the transaction.
func readTag(tx *badger.Txn, key []byte) (*core.Tag, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var tag *core.Tag
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		tag, unmarshalErr = storage.UnmarshalTag(val)
		return unmarshalErr
	})
	return tag, err
}
