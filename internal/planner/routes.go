package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mezotravel/backend/internal/apperr"
	"github.com/mezotravel/backend/internal/rag"
)

const defaultListLimit = 50

// RegisterRoutes mounts the itinerary and route planning API routes.
func RegisterRoutes(r chi.Router, store *Store, svc *rag.Service) {
	r.Route("/api/itineraries", func(r chi.Router) {
		r.Get("/", handleListItineraries(store))
		r.Post("/generate", handleGenerateItinerary(store, svc))
	})
	r.Route("/api/routes", func(r chi.Router) {
		r.Get("/", handleListRoutes(store))
		r.Post("/generate", handleGenerateRoute(store, svc))
	})
}

type itineraryRequest struct {
	Interests []string `json:"interests"`
	Duration  int      `json:"duration"`
	Locations []string `json:"locations"`
	Language  string   `json:"language"`
}

type itineraryResponse struct {
	Itinerary *Itinerary   `json:"itinerary"`
	Sources   []rag.Source `json:"sources"`
}

func handleGenerateItinerary(store *Store, svc *rag.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itineraryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Duration < 1 {
			http.Error(w, `{"error":"duration must be at least 1 day"}`, http.StatusBadRequest)
			return
		}
		if len(req.Interests) == 0 {
			http.Error(w, `{"error":"interests are required"}`, http.StatusBadRequest)
			return
		}

		prefs := rag.ItineraryPreferences{
			Interests: req.Interests,
			Duration:  req.Duration,
			Locations: req.Locations,
		}
		answer, err := svc.PlanItinerary(r.Context(), prefs, req.Language)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		name := fmt.Sprintf("%d günlük %s programı", req.Duration, strings.Join(req.Interests, ", "))
		it, err := store.SaveItinerary(r.Context(), name, answer.Text, prefs)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(itineraryResponse{Itinerary: it, Sources: answer.Sources})
	}
}

func handleListItineraries(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.ListItineraries(r.Context(), listLimit(r))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Itinerary{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

type routeRequest struct {
	StartLocation string   `json:"start_location"`
	EndLocation   string   `json:"end_location"`
	Waypoints     []string `json:"waypoints"`
	Language      string   `json:"language"`
}

type routeResponse struct {
	Route   *Route       `json:"route"`
	Sources []rag.Source `json:"sources"`
}

func handleGenerateRoute(store *Store, svc *rag.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req routeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.StartLocation == "" || req.EndLocation == "" {
			http.Error(w, `{"error":"start_location and end_location are required"}`, http.StatusBadRequest)
			return
		}

		plan := rag.RoutePlan{
			Start:     req.StartLocation,
			End:       req.EndLocation,
			Waypoints: req.Waypoints,
		}
		answer, err := svc.PlanRoute(r.Context(), plan, req.Language)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		name := req.StartLocation + " - " + req.EndLocation
		rt, err := store.SaveRoute(r.Context(), name, answer.Text, req.StartLocation, req.EndLocation, req.Waypoints)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(routeResponse{Route: rt, Sources: answer.Sources})
	}
}

func handleListRoutes(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.ListRoutes(r.Context(), listLimit(r))
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Route{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

func listLimit(r *http.Request) int {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return limit
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperr.ErrServiceUnavailable) {
		http.Error(w, `{"error":"service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
}
