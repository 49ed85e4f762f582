// Package planner generates and persists itineraries and travel routes
// through the retrieval-augmented pipeline.
package planner

import (
	"time"

	"github.com/mezotravel/backend/internal/rag"
)

// Itinerary is a stored, generated trip plan.
type Itinerary struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Preferences rag.ItineraryPreferences `json:"preferences"`
	CreatedAt   time.Time                `json:"created_at"`
}

// Route is a stored, generated route description.
type Route struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	Waypoints     []string  `json:"waypoints"`
	CreatedAt     time.Time `json:"created_at"`
}
