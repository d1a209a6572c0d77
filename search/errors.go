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

package search

import "errors"

var (
	// ErrCorpusLoaderRequired is returned when a corpus loader is not provided.
	ErrCorpusLoaderRequired = errors.New("corpus loader required")

	// ErrModelLoaderRequired is returned when a model loader is not provided.
	ErrModelLoaderRequired = errors.New("model loader required")

	// ErrNotReady is reported to monitors when a query is answered by keyword
	// search because embeddings are not available.
	ErrNotReady = errors.New("embeddings not ready")

	// ErrSemanticPanic wraps a panic recovered from the semantic search path.
	ErrSemanticPanic = errors.New("semantic search panicked")
)
