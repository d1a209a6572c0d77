package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ModelLoader resolves a model name into a ready Embedder.
// A loader should verify that the model actually serves embeddings, so that a
// missing model is reported at load time rather than on the first query.
type ModelLoader interface {
	LoadEmbedder(ctx context.Context, model string) (Embedder, error)
}

// ModelLoaderFunc adapts a function into a ModelLoader.
type ModelLoaderFunc func(ctx context.Context, model string) (Embedder, error)

func (f ModelLoaderFunc) LoadEmbedder(ctx context.Context, model string) (Embedder, error) {
	return f(ctx, model)
}
