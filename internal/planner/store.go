package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mezotravel/backend/internal/db"
	"github.com/mezotravel/backend/internal/rag"
)

// Store persists generated itineraries and routes.
type Store struct {
	db *db.DB
}

// NewStore creates a new planner store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// SaveItinerary records a generated trip plan.
func (s *Store) SaveItinerary(ctx context.Context, name, description string, prefs rag.ItineraryPreferences) (*Itinerary, error) {
	it := Itinerary{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Preferences: prefs,
		CreatedAt:   time.Now().UTC(),
	}

	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("encoding preferences: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO itineraries (id, name, description, preferences, created_at) VALUES (?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.Description, string(prefsJSON), it.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting itinerary: %w", err)
	}
	return &it, nil
}

// ListItineraries returns saved itineraries, newest first.
func (s *Store) ListItineraries(ctx context.Context, limit int) ([]Itinerary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, preferences, created_at FROM itineraries
		 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing itineraries: %w", err)
	}
	defer rows.Close()

	var items []Itinerary
	for rows.Next() {
		var it Itinerary
		var prefs string
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &prefs, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning itinerary: %w", err)
		}
		if err := json.Unmarshal([]byte(prefs), &it.Preferences); err != nil {
			return nil, fmt.Errorf("decoding preferences for %s: %w", it.ID, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveRoute records a generated route description.
func (s *Store) SaveRoute(ctx context.Context, name, description, start, end string, waypoints []string) (*Route, error) {
	rt := Route{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   description,
		StartLocation: start,
		EndLocation:   end,
		Waypoints:     waypoints,
		CreatedAt:     time.Now().UTC(),
	}
	if rt.Waypoints == nil {
		rt.Waypoints = []string{}
	}

	wpJSON, err := json.Marshal(rt.Waypoints)
	if err != nil {
		return nil, fmt.Errorf("encoding waypoints: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO routes (id, name, description, start_location, end_location, waypoints, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rt.ID, rt.Name, rt.Description, rt.StartLocation, rt.EndLocation, string(wpJSON), rt.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting route: %w", err)
	}
	return &rt, nil
}

// ListRoutes returns saved routes, newest first.
func (s *Store) ListRoutes(ctx context.Context, limit int) ([]Route, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, start_location, end_location, waypoints, created_at FROM routes
		 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}
	defer rows.Close()

	var items []Route
	for rows.Next() {
		var rt Route
		var waypoints string
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.StartLocation, &rt.EndLocation, &waypoints, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning route: %w", err)
		}
		if err := json.Unmarshal([]byte(waypoints), &rt.Waypoints); err != nil {
			return nil, fmt.Errorf("decoding waypoints for %s: %w", rt.ID, err)
		}
		items = append(items, rt)
	}
	return items, rows.Err()
}
