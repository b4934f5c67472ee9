package memory

import (
	"context"
	"sync"

	"github.com/bellavista/storefront/internal/domain/reservation"
)

var _ reservation.Repository = (*ReservationStore)(nil)

// ReservationStore keeps confirmed reservations in memory for the lifetime
// of the process.
type ReservationStore struct {
	mu           sync.RWMutex
	reservations []*reservation.Confirmation
}

// NewReservationStore returns an empty reservation store.
func NewReservationStore() *ReservationStore {
	return &ReservationStore{}
}

// Create records a confirmed reservation.
func (s *ReservationStore) Create(_ context.Context, c *reservation.Confirmation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = append(s.reservations, c)
	return nil
}

// All returns every reservation recorded so far, oldest first.
func (s *ReservationStore) All() []*reservation.Confirmation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*reservation.Confirmation, len(s.reservations))
	copy(out, s.reservations)
	return out
}
