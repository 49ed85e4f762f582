package rag

import (
	"context"
	"fmt"

	"github.com/mezotravel/backend/internal/apperr"
	"github.com/mezotravel/backend/internal/chunker"
	"github.com/mezotravel/backend/internal/embeddings"
	"github.com/mezotravel/backend/internal/vectordb"
)

// Ingestor runs the chunk, embed, upsert pipeline for one document.
type Ingestor struct {
	chunker  *chunker.Chunker
	embedder embeddings.Embedder
	index    *vectordb.Index
}

func NewIngestor(c *chunker.Chunker, embedder embeddings.Embedder, index *vectordb.Index) *Ingestor {
	return &Ingestor{chunker: c, embedder: embedder, index: index}
}

// Ingest splits the document text, embeds every chunk in one batch and
// upserts the records. Vector IDs are "{documentID}_{chunkIndex}" with
// indexes contiguous from zero. The returned records let the caller
// persist matching chunk rows; an empty document yields zero records
// and touches nothing.
func (ing *Ingestor) Ingest(ctx context.Context, documentID string, docType vectordb.DocumentType, source, text string) ([]vectordb.Record, error) {
	chunks := ing.chunker.Process(text)
	if len(chunks) == 0 {
		return nil, nil
	}

	vectors, err := ing.embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, apperr.Processing("embed", err)
	}
	if len(vectors) != len(chunks) {
		return nil, apperr.Processing("embed", fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks)))
	}

	records := make([]vectordb.Record, len(chunks))
	for i, chunk := range chunks {
		records[i] = vectordb.Record{
			VectorID:  fmt.Sprintf("%s_%d", documentID, i),
			Embedding: vectors[i],
			Payload: vectordb.Payload{
				DocumentID: documentID,
				ChunkIndex: i,
				Type:       docType,
				Source:     source,
				Text:       chunk,
			},
		}
	}

	if err := ing.index.Upsert(ctx, records); err != nil {
		return nil, apperr.Processing("index", err)
	}
	return records, nil
}
