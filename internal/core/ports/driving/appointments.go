package driving

import (
	"context"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

// AppointmentDirectory maps wallet identities to the appointment records
// they own, backed by the content store's metadata search rather than a
// database of its own.
type AppointmentDirectory interface {
	// Save persists a record under the wallet's namespace and returns the
	// content identifier assigned by the pinning gateway.
	Save(ctx context.Context, wallet string, record domain.PersistedAppointment) (string, error)

	// ListByWallet returns every record pinned under the wallet's
	// namespace. Entries that can no longer be fetched are skipped.
	ListByWallet(ctx context.Context, wallet string) ([]domain.PersistedAppointment, error)

	// Fetch retrieves one record by content identifier, or (nil, nil) if
	// it cannot be found or parsed.
	Fetch(ctx context.Context, contentID string) (*domain.PersistedAppointment, error)
}
