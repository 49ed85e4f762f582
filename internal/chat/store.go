// Package chat exposes the conversational assistant over HTTP and
// WebSocket, persisting each exchange for per-user history.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mezotravel/backend/internal/db"
)

// HistoryItem is one saved message/response exchange.
type HistoryItem struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Store persists conversations.
type Store struct {
	db *db.DB
}

// NewStore creates a new conversation store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save records one exchange for the given user.
func (s *Store) Save(ctx context.Context, userID, message, response string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, user_id, message, response, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), userID, message, response, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving conversation: %w", err)
	}
	return nil
}

// History returns the most recent exchanges for a user, newest first.
func (s *Store) History(ctx context.Context, userID string, limit int) ([]HistoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message, response, created_at FROM conversations
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.Message, &item.Response, &item.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
