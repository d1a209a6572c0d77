package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) *ProfileRepository {
	return &ProfileRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database.
func (r *ProfileRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveProfile inserts or replaces the profile of profile.UserID.
func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *core.UserProfile) error {
	if profile == nil || strings.TrimSpace(profile.UserID) == "" {
		return fmt.Errorf("%w: profile needs a user ID", storage.ErrInvalidQuery)
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		profile.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		value, err := storage.MarshalUserProfile(profile)
		if err != nil {
			return err
		}
		if err := tx.Set(makeProfileKey(profile.UserID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves the profile of userID.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	var profile *core.UserProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeProfileKey(userID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			profile, err = storage.UnmarshalUserProfile(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes the profile of userID.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, userID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(userID)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListProfiles returns every profile ordered by user ID.
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]*core.UserProfile, error) {
	var profiles []*core.UserProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				profile, err := storage.UnmarshalUserProfile(val)
				if err != nil {
					return err
				}
				profiles = append(profiles, profile)
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
	return profiles, nil
}
