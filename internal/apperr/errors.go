// Package apperr defines the error taxonomy shared across the API surface.
package apperr

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable indicates a required collaborator (vector index,
// embedder, or generation service) is not initialized or unreachable.
var ErrServiceUnavailable = errors.New("service unavailable")

// ErrNotFound indicates an operation addressed a document or chunk that
// does not exist.
var ErrNotFound = errors.New("not found")

// ProcessingError indicates chunking or embedding failed on otherwise
// valid input. Inputs that hit a ProcessingError are never persisted.
type ProcessingError struct {
	Stage string // "chunk", "embed", "upsert"
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed at %s: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// Processing wraps err as a ProcessingError for the given stage.
func Processing(stage string, err error) error {
	return &ProcessingError{Stage: stage, Err: err}
}
