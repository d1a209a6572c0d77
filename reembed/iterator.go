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

	"github.com/poiesic/policymatch/core"
)

const (
	// DefaultBatchSize is the default number of policies handed to each batch
	DefaultBatchSize = 64
)

// PolicySource supplies the stored corpus in insertion order.
type PolicySource interface {
	GetAllPolicies(ctx context.Context) ([]*core.PolicyRecord, error)
}

// RecordIterator walks the stored corpus in batches.
type RecordIterator struct {
	policies  PolicySource
	batchSize int
}

// NewRecordIterator creates a new record iterator.
// batchSize: number of policies per batch; values <= 0 select DefaultBatchSize
func NewRecordIterator(policies PolicySource, batchSize int) *RecordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &RecordIterator{
		policies:  policies,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of stored policies, in corpus order.
// Iteration stops on the first error from fn or when ctx is done.
func (it *RecordIterator) ForEach(ctx context.Context, fn func([]*core.PolicyRecord) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := it.policies.GetAllPolicies(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(records); start += it.batchSize {
		end := min(start+it.batchSize, len(records))

		if err := fn(records[start:end]); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
