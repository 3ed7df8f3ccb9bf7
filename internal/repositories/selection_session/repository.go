// Package selectionsession stores in-progress product configurations so a
// client can build one across several requests
package selectionsession

import (
	"context"
	"time"

	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=selectionsessionmock github.com/KirkDiggler/configurator-api/internal/repositories/selection_session Repository

// Session is one user's configuration of one product
type Session struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`

	// State holds the container, size and option picks
	State selection.State `json:"state"`

	// Version increases on every saved update. Update only succeeds when the
	// stored version still matches.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	Session *Session
	// TTL defaults to DefaultTTL when zero
	TTL time.Duration
}

// CreateOutput contains the stored session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	SessionID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	Session *Session
}

// UpdateInput contains parameters for saving a changed session
type UpdateInput struct {
	Session *Session
	// TTL extends the session from now; defaults to DefaultTTL when zero
	TTL time.Duration
}

// UpdateOutput contains the saved session
type UpdateOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	SessionID string
}

// DeleteOutput contains the result of deleting a session
type DeleteOutput struct{}

// Repository defines storage for configuration sessions
type Repository interface {
	// Create stores a new session
	// Returns errors.AlreadyExists if the ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session
	// Returns errors.NotFound if the session does not exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a session and slides its expiry forward
	// Returns errors.NotFound if the session has expired
	// Returns errors.Aborted if the session changed since it was read
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a session
	// Returns errors.NotFound if the session does not exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
