package driven

import (
	"context"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

// PinRecord is one entry of a pin listing.
type PinRecord struct {
	// ContentID is the content identifier of the pinned blob.
	ContentID string

	// Name is the metadata name the blob was pinned under.
	Name string
}

// PinStore provides access to a content-addressed pinning service.
// Uploads never mutate existing content: every Pin produces a new
// content identifier, so concurrent writers cannot conflict.
type PinStore interface {
	// Pin uploads payload under the given metadata name and returns the
	// gateway-assigned content identifier. Any non-success response or
	// transport failure is an error; the caller decides the fallback.
	Pin(ctx context.Context, name string, payload []byte) (string, error)

	// List returns the pinned entries whose metadata name starts with
	// prefix.
	List(ctx context.Context, prefix string) ([]PinRecord, error)

	// Fetch retrieves a pinned appointment record by content identifier.
	// A missing, unreadable, or malformed blob yields (nil, nil): treated
	// as "not found", never as an error.
	Fetch(ctx context.Context, contentID string) (*domain.PersistedAppointment, error)
}
