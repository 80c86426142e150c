package interfaces

import (
	"context"

	"github.com/lebonkosi/foliochat/internal/models"
)

// ProfileService loads the external knowledge document the assistant
// answers from.
type ProfileService interface {
	// Load returns the current profile document, serving a cached copy
	// when one is still within its freshness window.
	Load(ctx context.Context) (*models.ProfileDocument, error)

	// Refresh fetches a fresh document unconditionally, replacing any
	// cached copy.
	Refresh(ctx context.Context) error
}
