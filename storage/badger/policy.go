package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/storage"
)

// PolicyRepository implements storage.PolicyRepository for BadgerDB.
type PolicyRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.PolicyRepository = (*PolicyRepository)(nil)

// NewPolicyRepository creates a new PolicyRepository.
func NewPolicyRepository(backend *Backend) (*PolicyRepository, error) {
	idSeq, err := backend.GetSequence(policyIDSeq)
	if err != nil {
		return nil, err
	}

	return &PolicyRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *PolicyRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *PolicyRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// ReplacePolicies deletes the stored corpus and writes records in one transaction.
func (r *PolicyRepository) ReplacePolicies(ctx context.Context, records ...*core.PolicyRecord) ([]*core.PolicyRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		keys, err := r.policyKeys(tx)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		if err := r.putNew(tx, records); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AddPolicies appends records after the stored corpus.
func (r *PolicyRepository) AddPolicies(ctx context.Context, records ...*core.PolicyRecord) ([]*core.PolicyRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := r.putNew(tx, records); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetPolicy retrieves a single record by ID.
func (r *PolicyRepository) GetPolicy(ctx context.Context, id core.ID) (*core.PolicyRecord, error) {
	var record *core.PolicyRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePolicyKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalPolicyRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetAllPolicies returns every record in insertion order.
func (r *PolicyRepository) GetAllPolicies(ctx context.Context) ([]*core.PolicyRecord, error) {
	var records []*core.PolicyRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(policyRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalPolicyRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
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
	return records, nil
}

// LoadCorpus returns every record in insertion order.
func (r *PolicyRepository) LoadCorpus(ctx context.Context) ([]*core.PolicyRecord, error) {
	return r.GetAllPolicies(ctx)
}

// DeletePolicies removes records by ID.
func (r *PolicyRepository) DeletePolicies(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePolicyKey(id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return storage.ErrNotFound
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountPolicies returns the number of stored records.
func (r *PolicyRepository) CountPolicies(ctx context.Context) (int, error) {
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		keys, err := r.policyKeys(tx)
		count = len(keys)
		return err
	}, false)
	return count, err
}

func (r *PolicyRepository) putNew(tx *badger.Txn, records []*core.PolicyRecord) error {
	for _, record := range records {
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
		record.Id = core.ID(nextID)

		value, err := storage.MarshalPolicyRecord(record)
		if err != nil {
			return err
		}
		if err := tx.Set(makePolicyKey(record.Id), value); err != nil {
			return err
		}
	}
	return nil
}

func (r *PolicyRepository) policyKeys(tx *badger.Txn) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(policyRecordPrefix)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	return keys, nil
}
