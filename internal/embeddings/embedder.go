// Package embeddings maps text to fixed-dimensionality dense vectors.
package embeddings

import "context"

// Embedder defines the interface for generating text embeddings.
// Embed is order-preserving: result i corresponds to texts[i], and batching
// is equivalent to embedding each text independently.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// EmbedOne embeds a single text, typically a search query.
func EmbedOne(ctx context.Context, e Embedder, text string) ([]float32, error) {
	vecs, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, errEmptyResult
	}
	return vecs[0], nil
}
