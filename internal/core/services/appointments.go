package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driving"
	"github.com/medichain-labs/medichain-cli/internal/logger"
)

// Ensure AppointmentDirectory implements the interface.
var _ driving.AppointmentDirectory = (*AppointmentDirectory)(nil)

// AppointmentDirectory maps wallets to the appointment records they own.
// It is backed by the pin store's metadata search: the wallet address is
// the partition key and every record is named under the wallet's
// "_appointments/" namespace. There is no database of its own.
type AppointmentDirectory struct {
	pins    driven.PinStore
	cache   driven.RecordCache
	dataDir string
	now     func() time.Time
}

// NewAppointmentDirectory creates a directory over the given pin store.
// dataDir is where records are staged as JSON files before upload; empty
// disables staging. The cache is optional.
func NewAppointmentDirectory(pins driven.PinStore, cache driven.RecordCache, dataDir string) *AppointmentDirectory {
	return &AppointmentDirectory{
		pins:    pins,
		cache:   cache,
		dataDir: dataDir,
		now:     time.Now,
	}
}

// Save persists a record under the wallet's namespace. The staging file on
// disk and the pin metadata share the same name so that prefix listing and
// local inspection stay consistent.
func (d *AppointmentDirectory) Save(ctx context.Context, wallet string, record domain.PersistedAppointment) (string, error) {
	name := domain.AppointmentName(wallet, d.now())

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode appointment: %w", err)
	}

	if d.dataDir != "" {
		if err := d.stage(name, payload); err != nil {
			// Staging is best effort; the pinned copy is the one that counts.
			logger.Warn("Staging appointment locally failed: %v", err)
		}
	}

	contentID, err := d.pins.Pin(ctx, name, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return contentID, nil
}

// stage writes the record to <dataDir>/<name>.json.
func (d *AppointmentDirectory) stage(name string, payload []byte) error {
	path := filepath.Join(d.dataDir, filepath.FromSlash(name)+".json")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0600)
}

// ListByWallet returns every record pinned under the wallet's namespace.
// Entries that can no longer be fetched or parsed are skipped rather than
// failing the whole listing.
func (d *AppointmentDirectory) ListByWallet(ctx context.Context, wallet string) ([]domain.PersistedAppointment, error) {
	prefix := domain.WalletPrefix(wallet)

	pins, err := d.pins.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list pins for %s: %w", wallet, err)
	}
	logger.Debug("Found %d pins under %q", len(pins), prefix)

	records := make([]domain.PersistedAppointment, 0, len(pins))
	for _, pin := range pins {
		if pin.ContentID == "" {
			continue
		}
		record, err := d.Fetch(ctx, pin.ContentID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			logger.Warn("Skipping unfetchable pin %s", pin.ContentID)
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

// Fetch retrieves one record by content identifier, consulting the local
// cache first. Content addressing makes cached entries permanently valid.
func (d *AppointmentDirectory) Fetch(ctx context.Context, contentID string) (*domain.PersistedAppointment, error) {
	if d.cache != nil {
		cached, err := d.cache.Get(ctx, contentID)
		if err != nil {
			logger.Warn("Record cache read failed: %v", err)
		} else if cached != nil {
			logger.Debug("Cache hit for %s", contentID)
			return cached, nil
		}
	}

	record, err := d.pins.Fetch(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", contentID, err)
	}
	if record == nil {
		return nil, nil
	}

	if d.cache != nil {
		if err := d.cache.Put(ctx, contentID, record); err != nil {
			logger.Warn("Record cache write failed: %v", err)
		}
	}
	return record, nil
}
