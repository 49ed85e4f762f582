package chat

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mezotravel/backend/internal/rag"
)

const defaultHistoryLimit = 20

// RegisterRoutes mounts the chat API routes.
func RegisterRoutes(r chi.Router, store *Store, svc *rag.Service) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", handleChat(store, svc))
		r.Get("/history/{userID}", handleHistory(store))
		r.Get("/ws", handleWebSocket(store, svc))
	})
}

type chatRequest struct {
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
	Language string `json:"language"`
}

type chatResponse struct {
	Response string       `json:"response"`
	UserID   string       `json:"user_id"`
	Sources  []rag.Source `json:"sources"`
}

func handleChat(store *Store, svc *rag.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.UserID == "" || req.Message == "" {
			http.Error(w, `{"error":"user_id and message are required"}`, http.StatusBadRequest)
			return
		}

		answer := svc.AnswerQuery(r.Context(), req.Message, req.Language)

		if err := store.Save(r.Context(), req.UserID, req.Message, answer.Text); err != nil {
			// The visitor still gets their answer; only history suffers.
			log.Printf("[chat] saving conversation for %s: %v", req.UserID, err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{
			Response: answer.Text,
			UserID:   req.UserID,
			Sources:  answer.Sources,
		})
	}
}

type historyResponse struct {
	UserID  string        `json:"user_id"`
	History []HistoryItem `json:"history"`
}

func handleHistory(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		limit := defaultHistoryLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		items, err := store.History(r.Context(), userID, limit)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []HistoryItem{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(historyResponse{UserID: userID, History: items})
	}
}
