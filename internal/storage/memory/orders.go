package memory

import (
	"context"
	"sync"

	"github.com/bellavista/storefront/internal/domain/checkout"
)

var _ checkout.Repository = (*OrderStore)(nil)

// OrderStore keeps placed orders in memory for the lifetime of the process.
// Orders have no durable backing and vanish on restart.
type OrderStore struct {
	mu     sync.RWMutex
	orders []*checkout.Order
}

// NewOrderStore returns an empty order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

// Create records a placed order.
func (s *OrderStore) Create(_ context.Context, o *checkout.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
	return nil
}

// All returns every order recorded so far, oldest first.
func (s *OrderStore) All() []*checkout.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*checkout.Order, len(s.orders))
	copy(out, s.orders)
	return out
}
