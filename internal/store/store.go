// Package store implements the client-local handoff storage the views
// communicate through: the concert detail view writes a staged order, the
// checkout flow consumes it, and the confirmation view reads the completed
// order record exactly once. Semantics are last-write-wins with no locking,
// matching browser local storage.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"concert-ticketing-client/internal/models"
)

// Storage keys. String keys match the records' names in the original client
// so staged payloads stay recognizable in session dumps.
const (
	KeyPendingOrder   = "pendingOrder"
	KeyCompletedOrder = "completedOrder"
)

// ErrNotFound is returned when a key has no value
var ErrNotFound = errors.New("store: key not found")

// KV is a minimal key-value store over string keys and raw JSON values.
// Implementations must be last-write-wins; Get after Delete returns
// ErrNotFound.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Staging wraps a KV with the typed records the checkout flow exchanges
type Staging struct {
	kv KV
}

// NewStaging creates a staging store over the given KV backend
func NewStaging(kv KV) *Staging {
	return &Staging{kv: kv}
}

// StagedOrder reads the pending staged order. A missing, malformed or empty
// record is reported as models.ErrNothingStaged: the flow treats all three
// as "nothing to check out".
func (s *Staging) StagedOrder() (*models.StagedOrder, error) {
	raw, err := s.kv.Get(KeyPendingOrder)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, models.ErrNothingStaged
		}
		return nil, fmt.Errorf("failed to read staged order: %w", err)
	}

	var staged models.StagedOrder
	if err := json.Unmarshal(raw, &staged); err != nil {
		return nil, models.ErrNothingStaged
	}

	if err := staged.Validate(); err != nil {
		return nil, models.ErrNothingStaged
	}

	return &staged, nil
}

// SaveStagedOrder writes the staged order, overwriting any previous one
func (s *Staging) SaveStagedOrder(staged *models.StagedOrder) error {
	raw, err := json.Marshal(staged)
	if err != nil {
		return fmt.Errorf("failed to marshal staged order: %w", err)
	}

	if err := s.kv.Set(KeyPendingOrder, raw); err != nil {
		return fmt.Errorf("failed to save staged order: %w", err)
	}

	return nil
}

// ClearStagedOrder removes the staged order after checkout finalizes
func (s *Staging) ClearStagedOrder() error {
	return s.kv.Delete(KeyPendingOrder)
}

// CompletedOrder reads the completed order record for the confirmation view
func (s *Staging) CompletedOrder() (*models.CompletedOrderRecord, error) {
	raw, err := s.kv.Get(KeyCompletedOrder)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read completed order: %w", err)
	}

	var record models.CompletedOrderRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, models.ErrOrderNotFound
	}

	return &record, nil
}

// SaveCompletedOrder writes the completed order record. It is overwritten by
// the next purchase, never explicitly deleted.
func (s *Staging) SaveCompletedOrder(record *models.CompletedOrderRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal completed order: %w", err)
	}

	if err := s.kv.Set(KeyCompletedOrder, raw); err != nil {
		return fmt.Errorf("failed to save completed order: %w", err)
	}

	return nil
}
