// Package memory provides in-memory adapter implementations, used in tests
// and as an offline stand-in for the pinning gateway.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
)

// Ensure PinStore implements the interface.
var _ driven.PinStore = (*PinStore)(nil)

// PinStore is an in-memory implementation of driven.PinStore. Content
// identifiers are derived from the payload bytes, so identical payloads pin
// to identical identifiers, matching content-addressed semantics. Each Pin
// keeps its own metadata entry: the same blob pinned under two names lists
// under both, like two pins of one CID on a real gateway.
type PinStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte // contentID -> payload
	pins  []driven.PinRecord
}

// NewPinStore creates a new in-memory pin store.
func NewPinStore() *PinStore {
	return &PinStore{
		blobs: make(map[string][]byte),
	}
}

// Pin stores payload and returns its content-derived identifier.
func (s *PinStore) Pin(_ context.Context, name string, payload []byte) (string, error) {
	sum := sha256.Sum256(payload)
	contentID := "mem-" + hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[contentID] = payload
	s.pins = append(s.pins, driven.PinRecord{ContentID: contentID, Name: name})
	return contentID, nil
}

// List returns pinned entries whose name starts with prefix, in pin order.
func (s *PinStore) List(_ context.Context, prefix string) ([]driven.PinRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []driven.PinRecord
	for _, pin := range s.pins {
		if strings.HasPrefix(pin.Name, prefix) {
			records = append(records, pin)
		}
	}
	return records, nil
}

// Fetch parses the pinned payload as an appointment record. Unknown
// identifiers and unparseable payloads yield (nil, nil).
func (s *PinStore) Fetch(_ context.Context, contentID string) (*domain.PersistedAppointment, error) {
	s.mu.RLock()
	payload, ok := s.blobs[contentID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var record domain.PersistedAppointment
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, nil
	}
	return &record, nil
}
