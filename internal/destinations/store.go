package destinations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mezotravel/backend/internal/apperr"
	"github.com/mezotravel/backend/internal/db"
)

// Store reads the curated destination catalogue.
type Store struct {
	db *db.DB
}

// NewStore creates a new destination store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Get returns a single destination by id, or apperr.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Destination, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, category, location, rating, image_url, tags
		 FROM destinations WHERE id = ?`, id)

	var d Destination
	var tags string
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Category, &d.Location, &d.Rating, &d.ImageURL, &tags); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("destination %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("loading destination %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags for %s: %w", d.Name, err)
	}
	return &d, nil
}

// List returns destinations, optionally restricted to one category,
// ordered by rating descending.
func (s *Store) List(ctx context.Context, category string) ([]Destination, error) {
	query := `SELECT id, name, description, category, location, rating, image_url, tags
	          FROM destinations`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY rating DESC, name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing destinations: %w", err)
	}
	defer rows.Close()

	var dests []Destination
	for rows.Next() {
		var d Destination
		var tags string
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Category, &d.Location, &d.Rating, &d.ImageURL, &tags); err != nil {
			return nil, fmt.Errorf("scanning destination: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags for %s: %w", d.Name, err)
		}
		dests = append(dests, d)
	}
	return dests, rows.Err()
}
