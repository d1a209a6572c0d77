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

package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/storage"
)

// BuildInfoRepository implements storage.BuildInfoRepository for BadgerDB.
type BuildInfoRepository struct {
	backend *Backend
}

var _ storage.BuildInfoRepository = (*BuildInfoRepository)(nil)

// NewBuildInfoRepository creates a new BuildInfoRepository.
func NewBuildInfoRepository(backend *Backend) *BuildInfoRepository {
	return &BuildInfoRepository{
		backend: backend,
	}
}

// SaveBuildInfo persists the latest build record.
func (r *BuildInfoRepository) SaveBuildInfo(ctx context.Context, info *core.BuildInfo) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		value, err := storage.MarshalBuildInfo(info)
		if err != nil {
			return err
		}
		if err := tx.Set(makeBuildInfoKey(buildInfoName), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadBuildInfo retrieves the latest build record.
// Returns nil, nil if no build has been recorded.
func (r *BuildInfoRepository) LoadBuildInfo(ctx context.Context) (*core.BuildInfo, error) {
	var info *core.BuildInfo
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeBuildInfoKey(buildInfoName))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			info, unmarshalErr = storage.UnmarshalBuildInfo(val)
			return unmarshalErr
		})
	}, false)

	return info, err
}
