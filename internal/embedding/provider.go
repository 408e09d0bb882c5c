// Package embedding generates text embeddings for similarity search.
package embedding

import "context"

// Provider defines the interface for generating text embeddings.
// Vectors are float64 so they compare directly against the stored
// chunk embeddings without conversion at every query.
type Provider interface {
	// Embed generates an embedding for a single text string.
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbedBatch generates embeddings for multiple text strings.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}
