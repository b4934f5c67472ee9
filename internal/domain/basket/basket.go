// Package basket implements the basket engine: an ordered collection of
// catalog entries with quantities, owned by a single visitor session.
package basket

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/bellavista/storefront/internal/domain/catalog"
)

// Line is a basket line joined with its resolved catalog entry, as returned
// by Snapshot for pricing and order creation.
type Line struct {
	Entry    catalog.Entry
	Quantity int
}

// item is the stored form of a line: entry reference plus quantity.
type item struct {
	entryID  string
	quantity int
}

// Engine owns the basket lines. Lines keep the insertion order of their first
// Add across quantity updates, and at most one line exists per entry ID.
//
// The engine is owned by a single logical consumer, but the HTTP layer may
// call it from concurrent requests, so all operations are mutex-guarded.
type Engine struct {
	catalog catalog.Repository

	mu    sync.Mutex
	items []item
}

// New creates an empty basket engine resolving entries against the given
// catalog.
func New(repo catalog.Repository) *Engine {
	return &Engine{catalog: repo}
}

// Add increments the quantity for entryID by one, inserting a new line with
// quantity 1 when none exists. Unknown IDs are rejected with
// catalog.ErrNotFound: they indicate a stale reference from the caller.
func (e *Engine) Add(ctx context.Context, entryID string) error {
	if _, err := e.catalog.GetByID(ctx, entryID); err != nil {
		return errors.Wrapf(err, "resolve entry %s", entryID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].entryID == entryID {
			e.items[i].quantity++
			return nil
		}
	}
	e.items = append(e.items, item{entryID: entryID, quantity: 1})
	return nil
}

// SetQuantity sets the line's quantity directly. A quantity of zero or less
// removes the line. Unknown IDs are a no-op, not an error.
func (e *Engine) SetQuantity(entryID string, qty int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if qty <= 0 {
		e.removeLocked(entryID)
		return
	}
	for i := range e.items {
		if e.items[i].entryID == entryID {
			e.items[i].quantity = qty
			return
		}
	}
}

// Remove deletes the line for entryID if present; absent IDs are a no-op.
func (e *Engine) Remove(entryID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLocked(entryID)
}

func (e *Engine) removeLocked(entryID string) {
	for i := range e.items {
		if e.items[i].entryID == entryID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			return
		}
	}
}

// Clear empties the basket. Called once after an order snapshot is produced.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
}

// IsEmpty reports whether the basket holds no lines.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items) == 0
}

// Quantity returns the current quantity for entryID, or zero when the basket
// holds no line for it.
func (e *Engine) Quantity(entryID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, it := range e.items {
		if it.entryID == entryID {
			return it.quantity
		}
	}
	return 0
}

// Snapshot returns the current lines in insertion order, joined with resolved
// catalog entries. The returned slice is a copy; mutating it does not affect
// the basket.
func (e *Engine) Snapshot(ctx context.Context) ([]Line, error) {
	e.mu.Lock()
	items := make([]item, len(e.items))
	copy(items, e.items)
	e.mu.Unlock()

	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.entryID
	}

	// Batch resolve so the join stays a single repository round trip.
	entries, err := e.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "resolve entries")
	}
	byID := make(map[string]catalog.Entry, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
	}

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		entry, ok := byID[it.entryID]
		if !ok {
			// Add validates IDs on entry, so a missing entry means the
			// catalog changed underneath us. The catalog is immutable;
			// treat this as a defect rather than silently dropping lines.
			return nil, errors.Wrapf(catalog.ErrNotFound, "entry %s", it.entryID)
		}
		lines = append(lines, Line{Entry: entry, Quantity: it.quantity})
	}
	return lines, nil
}
