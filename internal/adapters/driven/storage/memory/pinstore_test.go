package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
)

func TestNewPinStore(t *testing.T) {
	store := NewPinStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.blobs)
}

func TestPinStore_PinIsContentAddressed(t *testing.T) {
	store := NewPinStore()
	ctx := context.Background()

	cid1, err := store.Pin(ctx, "a_appointments/appointment_1", []byte(`{"user":"Alice"}`))
	require.NoError(t, err)
	cid2, err := store.Pin(ctx, "a_appointments/appointment_2", []byte(`{"user":"Alice"}`))
	require.NoError(t, err)
	cid3, err := store.Pin(ctx, "a_appointments/appointment_3", []byte(`{"user":"Bob"}`))
	require.NoError(t, err)

	assert.Equal(t, cid1, cid2)
	assert.NotEqual(t, cid1, cid3)
}

func TestPinStore_ListByPrefix(t *testing.T) {
	store := NewPinStore()
	ctx := context.Background()

	_, err := store.Pin(ctx, "0xA_appointments/appointment_1", []byte(`{"user":"Alice"}`))
	require.NoError(t, err)
	_, err = store.Pin(ctx, "0xB_appointments/appointment_1", []byte(`{"user":"Bob"}`))
	require.NoError(t, err)

	records, err := store.List(ctx, "0xA_appointments/")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "0xA_appointments/appointment_1", records[0].Name)
}

func TestPinStore_SamePayloadUnderTwoWallets(t *testing.T) {
	store := NewPinStore()
	ctx := context.Background()

	payload := []byte(`{"user":"Alice"}`)
	cidA, err := store.Pin(ctx, "0xA_appointments/appointment_1", payload)
	require.NoError(t, err)
	cidB, err := store.Pin(ctx, "0xB_appointments/appointment_1", payload)
	require.NoError(t, err)
	assert.Equal(t, cidA, cidB)

	// Both wallets keep their own pin entry for the shared blob.
	recordsA, err := store.List(ctx, "0xA_appointments/")
	require.NoError(t, err)
	require.Len(t, recordsA, 1)
	assert.Equal(t, cidA, recordsA[0].ContentID)

	recordsB, err := store.List(ctx, "0xB_appointments/")
	require.NoError(t, err)
	require.Len(t, recordsB, 1)
	assert.Equal(t, cidB, recordsB[0].ContentID)
}

func TestPinStore_FetchRoundTrip(t *testing.T) {
	store := NewPinStore()
	ctx := context.Background()

	record := domain.PersistedAppointment{
		User:        "Alice",
		Doctor:      "Dr. Mehta",
		Symptoms:    "cough",
		ScheduledAt: "2026-03-04T10:00:00Z",
		Explanation: "Likely a cold.",
	}
	payload, err := json.Marshal(record)
	require.NoError(t, err)

	cid, err := store.Pin(ctx, "0xA_appointments/appointment_1", payload)
	require.NoError(t, err)

	fetched, err := store.Fetch(ctx, cid)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, record, *fetched)
}

func TestPinStore_FetchUnknownIsNotFound(t *testing.T) {
	store := NewPinStore()

	fetched, err := store.Fetch(context.Background(), "mem-does-not-exist")

	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestPinStore_FetchMalformedIsNotFound(t *testing.T) {
	store := NewPinStore()
	ctx := context.Background()

	cid, err := store.Pin(ctx, "x", []byte("not json at all"))
	require.NoError(t, err)

	fetched, err := store.Fetch(ctx, cid)
	require.NoError(t, err)
	assert.Nil(t, fetched)
}
