package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/bellavista/storefront/internal/domain/catalog"
)

// menuItemResponse is the wire shape of a dish.
type menuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Popular     bool            `json:"popular,omitempty"`
	Spicy       bool            `json:"spicy,omitempty"`
	Vegetarian  bool            `json:"vegetarian,omitempty"`
}

// wineResponse is the wire shape of a wine list entry.
type wineResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Producer    string          `json:"producer"`
	Region      string          `json:"region"`
	Vintage     string          `json:"vintage"`
	Description string          `json:"description"`
	PriceGlass  decimal.Decimal `json:"priceGlass,omitzero"`
	PriceBottle decimal.Decimal `json:"priceBottle"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Featured    bool            `json:"featured,omitempty"`
	Awards      []string        `json:"awards,omitempty"`
}

type menuListResponse struct {
	Items []menuItemResponse `json:"items"`
}

type wineListResponse struct {
	Items []wineResponse `json:"items"`
}

type categoryListResponse struct {
	Categories []string `json:"categories"`
}

func (h *Handler) menuItem(e catalog.Entry) menuItemResponse {
	return menuItemResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Category:    e.Category,
		Image:       h.imageBaseURL + e.Image,
		Popular:     e.Popular,
		Spicy:       e.Spicy,
		Vegetarian:  e.Vegetarian,
	}
}

func (h *Handler) wine(e catalog.Entry) wineResponse {
	return wineResponse{
		ID:          e.ID,
		Name:        e.Name,
		Producer:    e.Producer,
		Region:      e.Region,
		Vintage:     e.Vintage,
		Description: e.Description,
		PriceGlass:  e.PriceGlass,
		PriceBottle: e.Price,
		Category:    e.Category,
		Image:       h.imageBaseURL + e.Image,
		Featured:    e.Featured,
		Awards:      e.Awards,
	}
}

// filterParams reads the category selector and free-text query. A missing
// category means "All".
func filterParams(r *http.Request) (category, query string) {
	category = r.URL.Query().Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}
	return category, r.URL.Query().Get("q")
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	entries, err := h.menu.List(r.Context())
	if err != nil {
		h.writeError(w, r, errors.Wrap(err, "list menu"))
		return
	}

	category, query := filterParams(r)
	entries = catalog.Filter(entries, category, query, catalog.MenuSearchFields)

	items := make([]menuItemResponse, len(entries))
	for i, e := range entries {
		items[i] = h.menuItem(e)
	}
	h.writeJSON(w, r, http.StatusOK, menuListResponse{Items: items})
}

func (h *Handler) listWines(w http.ResponseWriter, r *http.Request) {
	entries, err := h.wines.List(r.Context())
	if err != nil {
		h.writeError(w, r, errors.Wrap(err, "list wines"))
		return
	}

	category, query := filterParams(r)
	entries = catalog.Filter(entries, category, query, catalog.WineSearchFields)

	items := make([]wineResponse, len(entries))
	for i, e := range entries {
		items[i] = h.wine(e)
	}
	h.writeJSON(w, r, http.StatusOK, wineListResponse{Items: items})
}

func (h *Handler) menuCategoryList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, categoryListResponse{Categories: withAll(h.menuCategories)})
}

func (h *Handler) wineCategoryList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, categoryListResponse{Categories: withAll(h.wineCategories)})
}

// withAll prepends the "All" selector the category tabs start on.
func withAll(categories []string) []string {
	return append([]string{catalog.CategoryAll}, categories...)
}
