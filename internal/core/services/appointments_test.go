package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medichain-labs/medichain-cli/internal/adapters/driven/storage/memory"
	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
)

func sampleRecord(user string) domain.PersistedAppointment {
	return domain.PersistedAppointment{
		User:        user,
		Doctor:      "Dr. Patel",
		Symptoms:    "persistent cough",
		ScheduledAt: "2026-03-04T10:00:00Z",
		Explanation: "Possible mild bronchitis. Warm fluids help.",
	}
}

func TestDirectory_SaveFetchRoundTrip(t *testing.T) {
	directory := NewAppointmentDirectory(memory.NewPinStore(), nil, "")
	ctx := context.Background()

	record := sampleRecord("Alice")
	cid, err := directory.Save(ctx, "0xA", record)
	require.NoError(t, err)
	require.NotEmpty(t, cid)
	assert.NotEqual(t, domain.ContentIDUploadFailed, cid)

	fetched, err := directory.Fetch(ctx, cid)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, record, *fetched)
}

func TestDirectory_ListingIsScopedPerWallet(t *testing.T) {
	directory := NewAppointmentDirectory(memory.NewPinStore(), nil, "")
	ctx := context.Background()

	_, err := directory.Save(ctx, "0xA", sampleRecord("Alice"))
	require.NoError(t, err)
	_, err = directory.Save(ctx, "0xB", sampleRecord("Bob"))
	require.NoError(t, err)

	forA, err := directory.ListByWallet(ctx, "0xA")
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, "Alice", forA[0].User)

	forB, err := directory.ListByWallet(ctx, "0xB")
	require.NoError(t, err)
	require.Len(t, forB, 1)
	assert.Equal(t, "Bob", forB[0].User)

	forC, err := directory.ListByWallet(ctx, "0xC")
	require.NoError(t, err)
	assert.Empty(t, forC)
}

func TestDirectory_SaveStagesLocalFile(t *testing.T) {
	dataDir := t.TempDir()
	directory := NewAppointmentDirectory(memory.NewPinStore(), nil, dataDir)
	directory.now = func() time.Time {
		return time.Date(2026, 3, 4, 10, 30, 15, 0, time.UTC)
	}

	_, err := directory.Save(context.Background(), "0xA", sampleRecord("Alice"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dataDir, "0xA_appointments"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "appointment_2026-03-04T10-30-15-000000000Z.json", entries[0].Name())
}

func TestDirectory_FetchUnknownReturnsNil(t *testing.T) {
	directory := NewAppointmentDirectory(memory.NewPinStore(), nil, "")

	fetched, err := directory.Fetch(context.Background(), "mem-missing")

	require.NoError(t, err)
	assert.Nil(t, fetched)
}

// stubCache implements driven.RecordCache for testing read-through behaviour.
type stubCache struct {
	entries map[string]domain.PersistedAppointment
	gets    int
	puts    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]domain.PersistedAppointment)}
}

func (c *stubCache) Get(_ context.Context, contentID string) (*domain.PersistedAppointment, error) {
	c.gets++
	record, ok := c.entries[contentID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (c *stubCache) Put(_ context.Context, contentID string, record *domain.PersistedAppointment) error {
	c.puts++
	c.entries[contentID] = *record
	return nil
}

func (c *stubCache) Close() error { return nil }

func TestDirectory_FetchPopulatesCache(t *testing.T) {
	cache := newStubCache()
	pins := memory.NewPinStore()
	directory := NewAppointmentDirectory(pins, cache, "")
	ctx := context.Background()

	cid, err := directory.Save(ctx, "0xA", sampleRecord("Alice"))
	require.NoError(t, err)

	first, err := directory.Fetch(ctx, cid)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, cache.puts)

	second, err := directory.Fetch(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
	// Second fetch is served from the cache; no new write happens.
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, 2, cache.gets)
}

// failingPinStore always fails uploads, for failure-path testing.
type failingPinStore struct{}

func (failingPinStore) Pin(_ context.Context, _ string, _ []byte) (string, error) {
	return "", errors.New("gateway returned status 500")
}

func (failingPinStore) List(_ context.Context, _ string) ([]driven.PinRecord, error) {
	return nil, nil
}

func (failingPinStore) Fetch(_ context.Context, _ string) (*domain.PersistedAppointment, error) {
	return nil, nil
}

func TestDirectory_SaveWrapsUploadFailure(t *testing.T) {
	directory := NewAppointmentDirectory(failingPinStore{}, nil, "")

	_, err := directory.Save(context.Background(), "0xA", sampleRecord("Alice"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}
