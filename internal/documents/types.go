package documents

import (
	"time"

	"github.com/mezotravel/backend/internal/vectordb"
)

// Document is an ingested knowledge-base entry. Content is stored in
// SQLite while its chunk embeddings live in the vector index, joined
// through vector IDs of the form "{id}_{chunk_index}".
type Document struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	Content    string                `json:"content,omitempty"`
	Type       vectordb.DocumentType `json:"type"`
	Source     string                `json:"source,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	ChunkCount int                   `json:"chunk_count"`
}
