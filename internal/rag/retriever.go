// Package rag implements the retrieval-augmented answering pipeline:
// retrieve relevant chunks, assemble a prompt, and generate a response
// through an ordered list of generation strategies.
package rag

import (
	"context"
	"fmt"

	"github.com/mezotravel/backend/internal/embeddings"
	"github.com/mezotravel/backend/internal/vectordb"
)

// Retriever turns a natural-language query into scored chunk matches.
type Retriever struct {
	embedder embeddings.Embedder
	index    *vectordb.Index
}

func NewRetriever(embedder embeddings.Embedder, index *vectordb.Index) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve embeds the query and searches the index. A failing embedding
// capability surfaces as an error wrapping apperr.ErrServiceUnavailable.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, filter *vectordb.Filter) ([]vectordb.SearchResult, error) {
	vec, err := embeddings.EmbedOne(ctx, r.embedder, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.index.Search(ctx, vec, topK, filter)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	return results, nil
}

// Ready reports whether the vector index is usable. It probes the index
// health rather than checking components for nil.
func (r *Retriever) Ready(ctx context.Context) bool {
	return r.index.Health(ctx).Connected
}
