package db

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogs(t *testing.T) {
	menu, wines, err := LoadCatalogs()
	require.NoError(t, err)

	require.Len(t, menu, 15)
	require.Len(t, wines, 15)

	// Spot-check a dish.
	arancini := menu[0]
	assert.Equal(t, "1", arancini.ID)
	assert.Equal(t, "Truffle Arancini", arancini.Name)
	assert.Equal(t, "Appetizers", arancini.Category)
	assert.True(t, decimal.RequireFromString("14.99").Equal(arancini.Price))
	assert.True(t, arancini.Popular)
	assert.True(t, arancini.Vegetarian)
	assert.False(t, arancini.Spicy)

	// Spot-check a wine: bottle price maps to the unit price.
	barolo := wines[0]
	assert.Equal(t, "w1", barolo.ID)
	assert.Equal(t, "Giuseppe Mascarello", barolo.Producer)
	assert.Equal(t, "Piedmont, Italy", barolo.Region)
	assert.True(t, decimal.RequireFromString("145").Equal(barolo.Price))
	assert.True(t, decimal.RequireFromString("28").Equal(barolo.PriceGlass))
	assert.True(t, barolo.Featured)
	assert.Len(t, barolo.Awards, 2)
}

func TestLoadCatalogs_EveryEntryWellFormed(t *testing.T) {
	menu, wines, err := LoadCatalogs()
	require.NoError(t, err)

	menuCats := make(map[string]struct{}, len(MenuCategories))
	for _, c := range MenuCategories {
		menuCats[c] = struct{}{}
	}
	for _, e := range menu {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Name)
		assert.True(t, e.Price.IsPositive(), "dish %s has price %s", e.ID, e.Price)
		assert.Contains(t, menuCats, e.Category, "dish %s", e.ID)
	}

	wineCats := make(map[string]struct{}, len(WineCategories))
	for _, c := range WineCategories {
		wineCats[c] = struct{}{}
	}
	for _, e := range wines {
		assert.NotEmpty(t, e.Producer, "wine %s", e.ID)
		assert.NotEmpty(t, e.Vintage, "wine %s", e.ID)
		assert.True(t, e.Price.IsPositive(), "wine %s", e.ID)
		assert.Contains(t, wineCats, e.Category, "wine %s", e.ID)
	}
}

func TestLoadCatalogs_BottleOnlyWineHasNoGlassPrice(t *testing.T) {
	_, wines, err := LoadCatalogs()
	require.NoError(t, err)

	var brunello bool
	for _, w := range wines {
		if w.Name == "Brunello di Montalcino" {
			brunello = true
			assert.True(t, w.PriceGlass.IsZero(), "bottle-only wine must have zero glass price")
		}
	}
	require.True(t, brunello, "seed should contain Brunello di Montalcino")
}
