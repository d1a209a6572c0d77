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

// Package storage provides the storage abstraction layer for policymatch.
//
// This package defines repository interfaces that decouple storage implementation
// from the search engine. The policy corpus, user profiles, cached embeddings and
// the last build record each have their own repository.
//
// # Constructor Return Type Pattern
//
// Consumers depend on these interfaces, never on a backend package:
//
//	var policies storage.PolicyRepository = repos.Policies
//
// Backend constructors (badger.NewPolicyRepository, ...) return concrete
// types so tests can reach backend-specific helpers.
//
// # Architecture
//
//   - PolicyRepository: the corpus, kept in insertion order
//   - ProfileRepository: user profiles keyed by user ID
//   - EmbeddingRepository: normalized vectors keyed by (model, text)
//   - BuildInfoRepository: metadata about the last published search snapshot
//
// # Encoding
//
// Records are stored as JSON. IDs are big-endian so that keys sort
// numerically; vectors are packed little-endian float32.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
