package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/policymatch/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
// Vectors are keyed by model name and the content ID of the embedded text.
type EmbeddingRepository struct {
	backend *Backend
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a new EmbeddingRepository.
func NewEmbeddingRepository(backend *Backend) *EmbeddingRepository {
	return &EmbeddingRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database.
func (r *EmbeddingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *EmbeddingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetEmbeddings looks up every text; misses are returned as nil entries.
func (r *EmbeddingRepository) GetEmbeddings(ctx context.Context, model string, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for i, text := range texts {
			item, err := tx.Get(makeEmbeddingKey(model, text))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				var err error
				vectors[i], err = storage.UnmarshalVector(val)
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// PutEmbeddings stores vectors[i] under texts[i].
// Writes go through a WriteBatch so large corpora never exceed the transaction size limit.
func (r *EmbeddingRepository) PutEmbeddings(ctx context.Context, model string, texts []string, vectors [][]float32) error {
	if len(texts) != len(vectors) {
		return fmt.Errorf("%w: %d texts, %d vectors", storage.ErrInvalidQuery, len(texts), len(vectors))
	}

	wb := r.backend.db.NewWriteBatch()
	defer wb.Cancel()

	for i, text := range texts {
		if len(vectors[i]) == 0 {
			continue
		}
		if err := wb.Set(makeEmbeddingKey(model, text), storage.MarshalVector(vectors[i])); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// CountEmbeddings returns the number of cached vectors for model.
func (r *EmbeddingRepository) CountEmbeddings(ctx context.Context, model string) (int, error) {
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEmbeddingModelPrefix(model)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// DeleteEmbeddings drops every cached vector for model.
func (r *EmbeddingRepository) DeleteEmbeddings(ctx context.Context, model string) error {
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEmbeddingModelPrefix(model)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	wb := r.backend.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	return wb.Flush()
}
