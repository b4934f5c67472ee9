// Package memory provides the in-memory storage for this system: the static
// catalogs loaded at startup and the ephemeral order and reservation records
// that vanish on restart.
package memory

import (
	"context"

	"github.com/bellavista/storefront/internal/domain/catalog"
)

var _ catalog.Repository = (*Catalog)(nil)

// Catalog is an immutable in-memory catalog.Repository. Entries keep their
// seed order; no mutation methods exist, so reads need no locking.
type Catalog struct {
	entries []catalog.Entry
	byID    map[string]int
}

// NewCatalog builds a catalog from the given entries, preserving their order.
func NewCatalog(entries []catalog.Entry) *Catalog {
	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	return &Catalog{entries: entries, byID: byID}
}

// List returns every entry in seed order. The result is a copy; callers may
// not mutate the catalog through it.
func (c *Catalog) List(_ context.Context) ([]catalog.Entry, error) {
	out := make([]catalog.Entry, len(c.entries))
	copy(out, c.entries)
	return out, nil
}

// GetByID returns a single entry by its identifier.
func (c *Catalog) GetByID(_ context.Context, id string) (*catalog.Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	e := c.entries[i]
	return &e, nil
}

// GetByIDs returns the entries matching any of the given IDs, in seed order.
// Missing IDs are skipped; the caller detects absences.
func (c *Catalog) GetByIDs(_ context.Context, ids []string) ([]catalog.Entry, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]catalog.Entry, 0, len(ids))
	for _, e := range c.entries {
		if _, ok := want[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}
