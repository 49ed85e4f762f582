package documents

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mezotravel/backend/internal/apperr"
	"github.com/mezotravel/backend/internal/db"
	"github.com/mezotravel/backend/internal/rag"
	"github.com/mezotravel/backend/internal/vectordb"
)

// Store manages document persistence across SQLite and the vector index.
type Store struct {
	db        *db.DB
	ingestor  *rag.Ingestor
	retriever *rag.Retriever
	index     *vectordb.Index
}

// NewStore creates a new document store.
func NewStore(database *db.DB, ingestor *rag.Ingestor, retriever *rag.Retriever, index *vectordb.Index) *Store {
	return &Store{db: database, ingestor: ingestor, retriever: retriever, index: index}
}

// Ingest persists a document and indexes its chunk embeddings. The
// relational rows and the index entries land together or not at all:
// a failed embedding or upsert rolls back the transaction, and a failed
// commit removes the already-upserted vectors.
func (s *Store) Ingest(ctx context.Context, doc Document) (*Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Type == "" {
		doc.Type = vectordb.DocTypeGeneral
	}
	doc.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, content, type, source, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Content, doc.Type, doc.Source, doc.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}

	records, err := s.ingestor.Ingest(ctx, doc.ID, doc.Type, doc.Source, doc.Content)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO document_chunks (vector_id, document_id, chunk_index, chunk_text) VALUES (?, ?, ?, ?)`,
			rec.VectorID, rec.Payload.DocumentID, rec.Payload.ChunkIndex, rec.Payload.Text,
		)
		if err != nil {
			s.unindex(doc.ID)
			return nil, fmt.Errorf("inserting chunk %s: %w", rec.VectorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.unindex(doc.ID)
		return nil, fmt.Errorf("committing document: %w", err)
	}

	doc.ChunkCount = len(records)
	return &doc, nil
}

// unindex removes the vectors of a document whose relational write
// failed, restoring the all-or-nothing guarantee.
func (s *Store) unindex(documentID string) {
	if err := s.index.DeleteByDocument(context.Background(), documentID); err != nil {
		log.Printf("[documents] failed to unindex %s after rollback: %v", documentID, err)
	}
}

// Search embeds the query and returns scored chunk matches, optionally
// restricted to one document type.
func (s *Store) Search(ctx context.Context, query string, topK int, docType *vectordb.DocumentType) ([]vectordb.SearchResult, error) {
	var filter *vectordb.Filter
	if docType != nil {
		filter = &vectordb.Filter{Type: docType}
	}
	return s.retriever.Retrieve(ctx, query, topK, filter)
}

// List returns documents ordered newest first, without content bodies.
func (s *Store) List(ctx context.Context, limit, offset int) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.title, d.type, d.source, d.created_at, COUNT(c.vector_id)
		 FROM documents d LEFT JOIN document_chunks c ON c.document_id = d.id
		 GROUP BY d.id ORDER BY d.created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var source sql.NullString
		if err := rows.Scan(&d.ID, &d.Title, &d.Type, &source, &d.CreatedAt, &d.ChunkCount); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		d.Source = source.String
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Delete removes a document from both stores. The index is cleared
// first so a failing index leaves the relational rows intact; chunk
// rows go with the document via the foreign key cascade.
func (s *Store) Delete(ctx context.Context, id string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("document %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking document: %w", err)
	}

	if err := s.index.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("removing vectors: %w: %w", apperr.ErrServiceUnavailable, err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}
