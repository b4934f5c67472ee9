package db

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/bellavista/storefront/internal/domain/catalog"
)

// Category lists in display order, mirroring the seed data.
var (
	MenuCategories = []string{"Appetizers", "Main Courses", "Pasta", "Pizza", "Desserts", "Beverages"}
	WineCategories = []string{"Red", "White", "Sparkling", "Rosé", "Dessert"}
)

// menuItemJSON is the seed file shape for a dish.
type menuItemJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Popular     bool            `json:"popular"`
	Spicy       bool            `json:"spicy"`
	Vegetarian  bool            `json:"vegetarian"`
}

// wineJSON is the seed file shape for a wine.
type wineJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Producer    string          `json:"producer"`
	Region      string          `json:"region"`
	Vintage     string          `json:"vintage"`
	Description string          `json:"description"`
	PriceGlass  decimal.Decimal `json:"priceGlass"`
	PriceBottle decimal.Decimal `json:"priceBottle"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Featured    bool            `json:"featured"`
	Awards      []string        `json:"awards"`
}

// LoadCatalogs decodes the embedded seed files into the menu and wine
// catalogs, preserving file order.
func LoadCatalogs() (menu, wines []catalog.Entry, err error) {
	var g errgroup.Group

	g.Go(func() error {
		var items []menuItemJSON
		if err := decodeSeed("seed/menu.json", &items); err != nil {
			return err
		}
		menu = make([]catalog.Entry, len(items))
		for i, it := range items {
			menu[i] = catalog.Entry{
				ID:          it.ID,
				Name:        it.Name,
				Description: it.Description,
				Price:       it.Price,
				Category:    it.Category,
				Image:       it.Image,
				Popular:     it.Popular,
				Spicy:       it.Spicy,
				Vegetarian:  it.Vegetarian,
			}
		}
		return nil
	})

	g.Go(func() error {
		var items []wineJSON
		if err := decodeSeed("seed/wines.json", &items); err != nil {
			return err
		}
		wines = make([]catalog.Entry, len(items))
		for i, w := range items {
			wines[i] = catalog.Entry{
				ID:          w.ID,
				Name:        w.Name,
				Description: w.Description,
				Price:       w.PriceBottle,
				Category:    w.Category,
				Image:       w.Image,
				Featured:    w.Featured,
				Producer:    w.Producer,
				Region:      w.Region,
				Vintage:     w.Vintage,
				PriceGlass:  w.PriceGlass,
				Awards:      w.Awards,
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return menu, wines, nil
}

func decodeSeed(name string, v any) error {
	data, err := seedFS.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "read %s", name)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decode %s", name)
	}
	return nil
}
