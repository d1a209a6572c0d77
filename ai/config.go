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

package ai

import (
	"errors"
	"runtime"
	"strings"
	"time"
)

// Config holds configuration for the embedding encoder.
type Config struct {
	// Host is the base URL of an OpenAI-compatible embeddings API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	Host string

	// Token is the bearer token sent to Host. Local servers accept any value.
	Token string

	// PrimaryModel is the Korean domain model tried first.
	PrimaryModel string

	// SecondaryModel is the general multilingual model used when the primary
	// model cannot be loaded. Empty disables the fallback.
	SecondaryModel string

	// BatchSize is the number of texts sent per embedding request.
	// Default: 16
	BatchSize int

	// Workers is the number of batches encoded concurrently.
	// Default: runtime.NumCPU() / 2, with a minimum of 1
	Workers int

	// MaxRetries is the number of attempts per batch.
	// Default: 3
	MaxRetries int

	// RetryDelay is the wait before the second attempt of a batch.
	// Default: 500ms
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithPrimaryModel sets the model tried first.
func WithPrimaryModel(model string) ConfigOption {
	return func(c *Config) {
		c.PrimaryModel = model
	}
}

// WithSecondaryModel sets the fallback model.
func WithSecondaryModel(model string) ConfigOption {
	return func(c *Config) {
		c.SecondaryModel = model
	}
}

// WithBatchSize sets the number of texts per embedding request.
func WithBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.BatchSize = size
	}
}

// WithWorkers sets how many batches are encoded concurrently.
func WithWorkers(workers int) ConfigOption {
	return func(c *Config) {
		c.Workers = workers
	}
}

// WithRetries sets the attempts per batch and the initial backoff delay.
func WithRetries(maxRetries int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
func DefaultConfig() *Config {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return &Config{
		Host:           "http://localhost:11434/v1",
		Token:          "none",
		PrimaryModel:   "klue/roberta-large",
		SecondaryModel: "paraphrase-multilingual-MiniLM-L12-v2",
		BatchSize:      16,
		Workers:        workers,
		MaxRetries:     3,
		RetryDelay:     500 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:7997"),
//	    WithPrimaryModel("BM-K/KoSimCSE-roberta"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Models returns the distinct models to try, in order.
func (c *Config) Models() []string {
	models := make([]string, 0, 2)
	if c.PrimaryModel != "" {
		models = append(models, c.PrimaryModel)
	}
	if c.SecondaryModel != "" && c.SecondaryModel != c.PrimaryModel {
		models = append(models, c.SecondaryModel)
	}
	return models
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.PrimaryModel == "" {
		return errors.New("ai config: PrimaryModel is required")
	}
	if c.BatchSize < 1 {
		return errors.New("ai config: BatchSize must be at least 1")
	}
	if c.Workers < 1 {
		return errors.New("ai config: Workers must be at least 1")
	}
	if c.MaxRetries < 1 {
		return errors.New("ai config: MaxRetries must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("ai config: RetryDelay must not be negative")
	}
	return nil
}
