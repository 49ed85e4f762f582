package destinations

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mezotravel/backend/internal/apperr"
)

const (
	defaultMaxResults = 5
	maxMaxResults     = 20
)

// RegisterRoutes mounts the destination and recommendation API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/destinations", handleList(store))
	r.Get("/api/destinations/{id}", handleGet(store))
	r.Post("/api/recommendations", handleRecommend(store))
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dest, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				http.Error(w, `{"error":"destination not found"}`, http.StatusNotFound)
				return
			}
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dest)
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dests, err := store.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if dests == nil {
			dests = []Destination{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dests)
	}
}

type recommendRequest struct {
	UserID     string   `json:"user_id"`
	Interests  []string `json:"interests"`
	MaxResults int      `json:"max_results"`
}

type recommendResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	UserID          string           `json:"user_id"`
}

func handleRecommend(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if len(req.Interests) == 0 {
			http.Error(w, `{"error":"interests are required"}`, http.StatusBadRequest)
			return
		}

		maxResults := req.MaxResults
		if maxResults == 0 {
			maxResults = defaultMaxResults
		}
		if maxResults < 1 || maxResults > maxMaxResults {
			http.Error(w, `{"error":"max_results must be between 1 and 20"}`, http.StatusBadRequest)
			return
		}

		recs, err := store.Recommend(r.Context(), req.Interests, maxResults)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if recs == nil {
			recs = []Recommendation{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recommendResponse{Recommendations: recs, UserID: req.UserID})
	}
}
