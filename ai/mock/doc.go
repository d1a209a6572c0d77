// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder and ai.ModelLoader
// for use in unit tests. The mocks allow tests to run without external
// embedding services and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	loader := mock.NewMockLoader()
//	encoder, err := ai.NewEncoder(ctx, loader, cfg)
//
//	// Simulate an unavailable primary model
//	loader.Fail(cfg.PrimaryModel, nil)
//
//	// Check call counts
//	count := loader.GetMockEmbedder().CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns hashed bag-of-words vectors, so texts sharing
//     words are similar and identical texts have similarity 1
//   - MockLoader: Serves one shared MockEmbedder for every model name
package mock
