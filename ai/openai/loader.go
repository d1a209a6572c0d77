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

package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/policymatch/ai"
)

// probeText is embedded once per model to confirm the model is served.
const probeText = "청년 주거 지원"

// Loader implements ai.ModelLoader against one OpenAI-compatible host.
type Loader struct {
	config *ai.Config
	logger *slog.Logger
}

var _ ai.ModelLoader = (*Loader)(nil)

// NewLoader creates a model loader for the configured host.
// The config is validated and normalized before use.
//
// Returns ai.ModelLoader interface (not *Loader) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewLoader(config *ai.Config) (ai.ModelLoader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Loader{
		config: config,
		logger: slog.Default().With("component", "openai-loader"),
	}, nil
}

// LoadEmbedder creates an embedder for model and embeds a probe text with it.
// A model the host does not serve fails here instead of on the first query.
func (l *Loader) LoadEmbedder(ctx context.Context, model string) (ai.Embedder, error) {
	embedder, err := newEmbedder(l.config, model)
	if err != nil {
		return nil, err
	}

	var probe []float32
	err = ai.RetryWithBackoff(ctx, func() error {
		var embedErr error
		probe, embedErr = embedder.EmbedText(ctx, probeText)
		return embedErr
	}, l.config.MaxRetries, l.config.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("probing model %s: %w", model, err)
	}
	if len(probe) == 0 {
		return nil, fmt.Errorf("probing model %s: %w", model, ai.ErrEmptyEmbedding)
	}

	l.logger.Info("embedding model loaded", "model", model, "dimensions", len(probe))
	return embedder, nil
}
