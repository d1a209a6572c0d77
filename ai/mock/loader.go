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

package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/policymatch/ai"
)

// MockLoader is a test double for ai.ModelLoader.
// Every model resolves to the same MockEmbedder unless a failure was
// injected for it with Fail.
type MockLoader struct {
	embedder *MockEmbedder

	mu       sync.Mutex
	failures map[string]error
	loaded   []string
}

var _ ai.ModelLoader = (*MockLoader)(nil)

// NewMockLoader creates a loader that serves a fresh MockEmbedder.
// Returns the concrete type so tests can inject failures and inspect loads.
func NewMockLoader() *MockLoader {
	return NewMockLoaderWithEmbedder(NewMockEmbedder())
}

// NewMockLoaderWithEmbedder creates a loader that serves embedder for every model.
func NewMockLoaderWithEmbedder(embedder *MockEmbedder) *MockLoader {
	return &MockLoader{
		embedder: embedder,
		failures: make(map[string]error),
	}
}

// Fail makes loading model return err. A nil err uses a generic failure.
func (l *MockLoader) Fail(model string, err error) *MockLoader {
	if err == nil {
		err = fmt.Errorf("model %s not available", model)
	}
	l.mu.Lock()
	l.failures[model] = err
	l.mu.Unlock()
	return l
}

// Recover removes an injected failure for model.
func (l *MockLoader) Recover(model string) *MockLoader {
	l.mu.Lock()
	delete(l.failures, model)
	l.mu.Unlock()
	return l
}

// LoadEmbedder returns the shared mock embedder or the injected failure.
func (l *MockLoader) LoadEmbedder(_ context.Context, model string) (ai.Embedder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = append(l.loaded, model)
	if err, ok := l.failures[model]; ok {
		return nil, err
	}
	return l.embedder, nil
}

// Attempts returns every model name passed to LoadEmbedder, in call order.
func (l *MockLoader) Attempts() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.loaded))
	copy(out, l.loaded)
	return out
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (l *MockLoader) GetMockEmbedder() *MockEmbedder {
	return l.embedder
}
