package documents

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mezotravel/backend/internal/apperr"
	"github.com/mezotravel/backend/internal/vectordb"
)

const (
	defaultTopK = 5
	maxTopK     = 50

	defaultListLimit = 50
)

// RegisterRoutes mounts the document API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/documents", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/ingest", handleIngest(store))
		r.Post("/search", handleSearch(store))
		r.Delete("/{id}", handleDelete(store))
	})
}

type ingestRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Source  string `json:"source"`
}

type ingestResponse struct {
	DocumentID    string `json:"document_id"`
	Title         string `json:"title"`
	ChunksCreated int    `json:"chunks_created"`
	Status        string `json:"status"`
}

func handleIngest(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ingestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Title == "" || req.Content == "" {
			http.Error(w, `{"error":"title and content are required"}`, http.StatusBadRequest)
			return
		}
		if req.Type != "" && !vectordb.ValidDocumentType(req.Type) {
			http.Error(w, `{"error":"invalid document type"}`, http.StatusBadRequest)
			return
		}

		doc, err := store.Ingest(r.Context(), Document{
			Title:   req.Title,
			Content: req.Content,
			Type:    vectordb.DocumentType(req.Type),
			Source:  req.Source,
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(ingestResponse{
			DocumentID:    doc.ID,
			Title:         doc.Title,
			ChunksCreated: doc.ChunkCount,
			Status:        "created",
		})
	}
}

type searchRequest struct {
	Query      string `json:"query"`
	TopK       int    `json:"top_k"`
	FilterType string `json:"filter_type"`
}

type searchResult struct {
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	ChunkText  string  `json:"chunk_text"`
	Score      float32 `json:"score"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
	Count   int            `json:"count"`
}

func handleSearch(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Query == "" {
			http.Error(w, `{"error":"query is required"}`, http.StatusBadRequest)
			return
		}

		topK := req.TopK
		if topK == 0 {
			topK = defaultTopK
		}
		if topK < 1 || topK > maxTopK {
			http.Error(w, `{"error":"top_k must be between 1 and 50"}`, http.StatusBadRequest)
			return
		}

		var docType *vectordb.DocumentType
		if req.FilterType != "" {
			if !vectordb.ValidDocumentType(req.FilterType) {
				http.Error(w, `{"error":"invalid filter_type"}`, http.StatusBadRequest)
				return
			}
			t := vectordb.DocumentType(req.FilterType)
			docType = &t
		}

		matches, err := store.Search(r.Context(), req.Query, topK, docType)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		results := make([]searchResult, 0, len(matches))
		for _, m := range matches {
			results = append(results, searchResult{
				DocumentID: m.Payload.DocumentID,
				ChunkIndex: m.Payload.ChunkIndex,
				ChunkText:  m.Text,
				Score:      m.Score,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(searchResponse{Query: req.Query, Results: results, Count: len(results)})
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultListLimit
		offset := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		docs, err := store.List(r.Context(), limit, offset)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if docs == nil {
			docs = []Document{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(docs)
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.Delete(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"document_id": id, "status": "deleted"})
	}
}

// writeStoreError maps the error taxonomy onto HTTP status codes:
// unavailable capabilities are 503, missing entities 404, pipeline
// failures 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrServiceUnavailable):
		http.Error(w, `{"error":"service unavailable"}`, http.StatusServiceUnavailable)
	case errors.Is(err, apperr.ErrNotFound):
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	default:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
	}
}
