package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "klue/roberta-large", cfg.PrimaryModel)
	assert.Equal(t, "paraphrase-multilingual-MiniLM-L12-v2", cfg.SecondaryModel)
	assert.Equal(t, 16, cfg.BatchSize)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
		assert.Equal(t, 16, cfg.BatchSize)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080/v1"),
			WithToken("secret"),
			WithPrimaryModel("custom-primary"),
			WithSecondaryModel("custom-secondary"),
			WithBatchSize(4),
			WithWorkers(2),
			WithRetries(5, time.Second),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
		assert.Equal(t, "secret", cfg.Token)
		assert.Equal(t, "custom-primary", cfg.PrimaryModel)
		assert.Equal(t, "custom-secondary", cfg.SecondaryModel)
		assert.Equal(t, 4, cfg.BatchSize)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, 5, cfg.MaxRetries)
		assert.Equal(t, time.Second, cfg.RetryDelay)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{name: "already has /v1", host: "http://localhost:11434/v1", expected: "http://localhost:11434/v1"},
		{name: "missing /v1", host: "http://localhost:11434", expected: "http://localhost:11434/v1"},
		{name: "has trailing slash", host: "http://localhost:11434/", expected: "http://localhost:11434/v1"},
		{name: "empty host", host: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.Host)
			assert.Equal(t, "none", cfg.Token)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Host:         "http://localhost:11434",
			PrimaryModel: "klue/roberta-large",
			BatchSize:    16,
			Workers:      1,
			MaxRetries:   1,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, field: "Host"},
		{name: "missing primary model", mutate: func(c *Config) { c.PrimaryModel = "" }, field: "PrimaryModel"},
		{name: "zero batch size", mutate: func(c *Config) { c.BatchSize = 0 }, field: "BatchSize"},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, field: "Workers"},
		{name: "zero retries", mutate: func(c *Config) { c.MaxRetries = 0 }, field: "MaxRetries"},
		{name: "negative delay", mutate: func(c *Config) { c.RetryDelay = -time.Second }, field: "RetryDelay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfigModels(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, (&Config{PrimaryModel: "a", SecondaryModel: "b"}).Models())
	assert.Equal(t, []string{"a"}, (&Config{PrimaryModel: "a", SecondaryModel: "a"}).Models())
	assert.Equal(t, []string{"a"}, (&Config{PrimaryModel: "a"}).Models())
}

func TestConfigValidate_Integration(t *testing.T) {
	// Test that NewConfig produces a valid configuration
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	// Test that DefaultConfig produces a valid configuration
	cfg = DefaultConfig()
	require.NoError(t, cfg.Validate())
}
