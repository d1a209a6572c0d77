package ai_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encoderConfig(batchSize int) *ai.Config {
	return ai.NewConfig(
		ai.WithPrimaryModel("primary"),
		ai.WithSecondaryModel("secondary"),
		ai.WithBatchSize(batchSize),
		ai.WithWorkers(4),
		ai.WithRetries(2, time.Millisecond),
	)
}

func corpusTexts(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("service: policy %d youth housing rent support %d", i, i%3)
	}
	return texts
}

func TestNewEncoder_UsesPrimaryModel(t *testing.T) {
	loader := mock.NewMockLoader()

	encoder, err := ai.NewEncoder(context.Background(), loader, encoderConfig(16))
	require.NoError(t, err)
	defer encoder.Release()

	assert.Equal(t, "primary", encoder.Model())
	assert.Equal(t, []string{"primary"}, loader.Attempts())
}

func TestNewEncoder_FallsBackToSecondary(t *testing.T) {
	loader := mock.NewMockLoader().Fail("primary", nil)

	encoder, err := ai.NewEncoder(context.Background(), loader, encoderConfig(16))
	require.NoError(t, err)
	defer encoder.Release()

	assert.Equal(t, "secondary", encoder.Model())
	assert.Equal(t, []string{"primary", "secondary"}, loader.Attempts())
}

func TestNewEncoder_BothModelsFail(t *testing.T) {
	primaryErr := errors.New("primary weights missing")
	secondaryErr := errors.New("secondary weights missing")
	loader := mock.NewMockLoader().Fail("primary", primaryErr).Fail("secondary", secondaryErr)

	encoder, err := ai.NewEncoder(context.Background(), loader, encoderConfig(16))
	require.Error(t, err)
	assert.Nil(t, encoder)
	assert.ErrorIs(t, err, ai.ErrEncoderUnavailable)
	assert.ErrorIs(t, err, primaryErr)
	assert.ErrorIs(t, err, secondaryErr)
}

func TestNewEncoder_RequiresLoader(t *testing.T) {
	_, err := ai.NewEncoder(context.Background(), nil, encoderConfig(16))
	assert.ErrorIs(t, err, ai.ErrModelLoaderRequired)
}

func TestEncoder_EncodeProducesUnitVectorsInOrder(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	encoder, err := ai.NewEncoderWithEmbedder("m", embedder, encoderConfig(4))
	require.NoError(t, err)
	defer encoder.Release()

	texts := corpusTexts(10)
	vectors, err := encoder.Encode(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	sizes := embedder.BatchSizes()
	slices.Sort(sizes)
	assert.Equal(t, []int{2, 4, 4}, sizes)
	for i, v := range vectors {
		assert.InDelta(t, 1.0, ai.Dot(v, v), 1e-5, "vector %d should be unit length", i)
		want := ai.NormalizeVector(mock.BagOfWords(texts[i], mock.DefaultDimensions))
		assert.InDeltaSlice(t, want, v, 1e-6, "vector %d out of order", i)
	}
}

func TestEncoder_BatchingDoesNotChangeResults(t *testing.T) {
	texts := corpusTexts(23)

	var reference [][]float32
	for _, size := range []int{1, 3, 16, 64} {
		encoder, err := ai.NewEncoderWithEmbedder("m", mock.NewMockEmbedder(), encoderConfig(size))
		require.NoError(t, err)

		vectors, err := encoder.Encode(context.Background(), texts)
		encoder.Release()
		require.NoError(t, err)

		if reference == nil {
			reference = vectors
			continue
		}
		assert.Equal(t, reference, vectors, "batch size %d changed the vectors", size)
	}
}

func TestEncoder_QueryUsesSamePath(t *testing.T) {
	encoder, err := ai.NewEncoderWithEmbedder("m", mock.NewMockEmbedder(), encoderConfig(4))
	require.NoError(t, err)
	defer encoder.Release()

	texts := corpusTexts(9)
	vectors, err := encoder.Encode(context.Background(), texts)
	require.NoError(t, err)

	query, err := encoder.EncodeQuery(context.Background(), texts[5])
	require.NoError(t, err)
	assert.Equal(t, vectors[5], query)
	assert.InDelta(t, 1.0, ai.CosineSimilarity(vectors[5], query), 1e-9)
}

func TestEncoder_RetriesTransientFailures(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	failures := 1
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		if failures > 0 {
			failures--
			return nil, errors.New("connection reset")
		}
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = mock.BagOfWords(text, 8)
		}
		return out, nil
	}

	encoder, err := ai.NewEncoderWithEmbedder("m", embedder, encoderConfig(16))
	require.NoError(t, err)
	defer encoder.Release()

	vectors, err := encoder.Encode(context.Background(), []string{"a b", "c"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, 2, embedder.CallCount())
}

func TestEncoder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(ctx context.Context, texts []string) ([][]float32, error)
		wantErr error
	}{
		{
			name: "count mismatch",
			fn: func(_ context.Context, texts []string) ([][]float32, error) {
				return [][]float32{{1}}, nil
			},
			wantErr: ai.ErrEmbeddingCount,
		},
		{
			name: "empty vector",
			fn: func(_ context.Context, texts []string) ([][]float32, error) {
				return make([][]float32, len(texts)), nil
			},
			wantErr: ai.ErrEmptyEmbedding,
		},
		{
			name: "dimension mismatch",
			fn: func(_ context.Context, texts []string) ([][]float32, error) {
				out := make([][]float32, len(texts))
				for i := range out {
					out[i] = make([]float32, i+1)
					out[i][0] = 1
				}
				return out, nil
			},
			wantErr: ai.ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder := mock.NewMockEmbedder()
			embedder.EmbedTextsFunc = tt.fn

			encoder, err := ai.NewEncoderWithEmbedder("m", embedder, encoderConfig(16))
			require.NoError(t, err)
			defer encoder.Release()

			_, err = encoder.Encode(context.Background(), []string{"a", "b", "c"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncoder_ParallelBatchFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("server overloaded")
	}

	encoder, err := ai.NewEncoderWithEmbedder("m", embedder, encoderConfig(2))
	require.NoError(t, err)
	defer encoder.Release()

	_, err = encoder.Encode(context.Background(), corpusTexts(7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server overloaded")
}

func TestEncoder_EmptyInput(t *testing.T) {
	encoder, err := ai.NewEncoderWithEmbedder("m", mock.NewMockEmbedder(), encoderConfig(4))
	require.NoError(t, err)
	defer encoder.Release()

	vectors, err := encoder.Encode(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}
