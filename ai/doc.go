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

// Package ai provides the embedding layer of the policy matcher.
//
// This package defines the Embedder and ModelLoader abstractions and the
// Encoder built on top of them. Business logic depends on these abstractions
// rather than on a concrete embedding service.
//
// # Encoder
//
// NewEncoder loads Config.PrimaryModel through a ModelLoader and falls back to
// Config.SecondaryModel when the primary cannot be loaded. When neither model
// loads it returns an error wrapping ErrEncoderUnavailable; callers are
// expected to switch to keyword matching.
//
// Encode splits its input into fixed-size batches, retries each batch with
// exponential backoff and returns unit-length vectors in input order. Query
// texts go through the same Encode path, so corpus and query vectors are
// directly comparable with a dot product.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewLoader, openai.NewEmbedder) return INTERFACE
// types to enforce abstraction and prevent accidental coupling to concrete
// implementations.
//
//	loader, err := openai.NewLoader(config)  // returns ai.ModelLoader
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockLoader) return
// CONCRETE types to enable test assertions and behavior injection via the
// mock's public methods (CallCount, Fail, Attempts, etc.).
//
//	loader := mock.NewMockLoader().Fail("klue/roberta-large", nil)
//	encoder, err := ai.NewEncoder(ctx, loader, config)
package ai
