package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/policymatch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingDatum struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// newEmbeddingServer serves /v1/embeddings for every model except "missing".
func newEmbeddingServer(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/v1/embeddings" {
			http.NotFound(w, r)
			return
		}

		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Model == "missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"model not found"}}`))
			return
		}

		data := make([]embeddingDatum, len(req.Input))
		for i, text := range req.Input {
			data[i] = embeddingDatum{
				Object:    "embedding",
				Embedding: []float32{float32(len([]rune(text))), 1, 0},
				Index:     i,
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
		})
	}))
}

func testConfig(host string) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(host),
		ai.WithPrimaryModel("klue/roberta-large"),
		ai.WithSecondaryModel("missing"),
		ai.WithRetries(1, time.Millisecond),
	)
}

func TestLoader_LoadEmbedder(t *testing.T) {
	var requests atomic.Int64
	server := newEmbeddingServer(t, &requests)
	defer server.Close()

	loader, err := NewLoader(testConfig(server.URL))
	require.NoError(t, err)

	embedder, err := loader.LoadEmbedder(context.Background(), "klue/roberta-large")
	require.NoError(t, err)
	assert.Equal(t, int64(1), requests.Load(), "loading should probe the model once")

	vectors, err := embedder.EmbedTexts(context.Background(), []string{"ab", "abcd"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{2, 1, 0}, vectors[0])
	assert.Equal(t, []float32{4, 1, 0}, vectors[1])

	single, err := embedder.EmbedText(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1, 0}, single)
}

func TestLoader_MissingModelFailsAtLoad(t *testing.T) {
	var requests atomic.Int64
	server := newEmbeddingServer(t, &requests)
	defer server.Close()

	loader, err := NewLoader(testConfig(server.URL))
	require.NoError(t, err)

	_, err = loader.LoadEmbedder(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestLoader_EncoderFallsBackToWorkingModel(t *testing.T) {
	var requests atomic.Int64
	server := newEmbeddingServer(t, &requests)
	defer server.Close()

	cfg := ai.NewConfig(
		ai.WithHost(server.URL),
		ai.WithPrimaryModel("missing"),
		ai.WithSecondaryModel("paraphrase-multilingual-MiniLM-L12-v2"),
		ai.WithRetries(1, time.Millisecond),
	)
	loader, err := NewLoader(cfg)
	require.NoError(t, err)

	encoder, err := ai.NewEncoder(context.Background(), loader, cfg)
	require.NoError(t, err)
	defer encoder.Release()

	assert.Equal(t, "paraphrase-multilingual-MiniLM-L12-v2", encoder.Model())
	vector, err := encoder.EncodeQuery(context.Background(), "rent")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ai.Dot(vector, vector), 1e-6)
}

func TestNewLoader_InvalidConfig(t *testing.T) {
	_, err := NewLoader(&ai.Config{})
	assert.Error(t, err)
}
