package driven

import (
	"context"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

// RecordCache is a local read-through cache of fetched appointment records,
// keyed by content identifier. Content addressing makes entries immutable:
// a cached record never needs invalidation because re-fetching the same
// identifier always yields the same bytes.
//
// The cache is disposable. It never acts as a source of truth; deleting it
// only costs refetches from the public gateway.
type RecordCache interface {
	// Get returns the cached record for a content identifier, or (nil, nil)
	// on a cache miss.
	Get(ctx context.Context, contentID string) (*domain.PersistedAppointment, error)

	// Put stores a fetched record under its content identifier.
	Put(ctx context.Context, contentID string, record *domain.PersistedAppointment) error

	// Close releases the underlying storage.
	Close() error
}
