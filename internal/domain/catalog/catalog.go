package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested catalog entry does not exist.
var ErrNotFound = errors.New("catalog entry not found")

// Entry represents a single listable item: a menu dish or a wine.
// Entries are immutable once loaded; the wine-only descriptive fields
// (Producer, Region, Vintage, PriceGlass, Awards) are zero for dishes.
type Entry struct {
	ID          string
	Name        string
	Description string
	// Price is the unit price: dish price, or bottle price for wines.
	Price    decimal.Decimal
	Category string
	Image    string

	Popular    bool
	Spicy      bool
	Vegetarian bool
	Featured   bool

	Producer string
	Region   string
	Vintage  string
	// PriceGlass is the by-the-glass price for wines that offer one.
	// A zero value means the wine is sold by the bottle only.
	PriceGlass decimal.Decimal
	Awards     []string
}

// Repository defines read operations over a loaded catalog. Implementations
// must preserve the original load order in List results.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	GetByIDs(ctx context.Context, ids []string) ([]Entry, error)
}
