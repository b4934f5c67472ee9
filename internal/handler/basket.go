package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/bellavista/storefront/internal/domain/pricing"
)

// basketLineResponse is one basket line joined with its dish.
type basketLineResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// breakdownResponse is the derived price breakdown.
type breakdownResponse struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

type basketResponse struct {
	Items     []basketLineResponse `json:"items"`
	Breakdown breakdownResponse    `json:"breakdown"`
}

type addItemRequest struct {
	EntryID string `json:"entryId"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func intDecimal(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func breakdownView(b pricing.Breakdown) breakdownResponse {
	return breakdownResponse{
		Subtotal:    b.Subtotal,
		DeliveryFee: b.DeliveryFee,
		Tax:         b.Tax,
		Total:       b.Total,
	}
}

// basketView snapshots the basket and recomputes the breakdown. The breakdown
// is derived on every read, never cached.
func (h *Handler) basketView(r *http.Request) (any, error) {
	lines, err := h.basket.Snapshot(r.Context())
	if err != nil {
		return nil, errors.Wrap(err, "snapshot basket")
	}

	items := make([]basketLineResponse, len(lines))
	priced := make([]pricing.Item, len(lines))
	for i, l := range lines {
		items[i] = basketLineResponse{
			ID:        l.Entry.ID,
			Name:      l.Entry.Name,
			Price:     l.Entry.Price,
			Image:     h.imageBaseURL + l.Entry.Image,
			Quantity:  l.Quantity,
			LineTotal: l.Entry.Price.Mul(intDecimal(l.Quantity)),
		}
		priced[i] = pricing.Item{Price: l.Entry.Price, Quantity: l.Quantity}
	}

	return basketResponse{
		Items:     items,
		Breakdown: breakdownView(pricing.Price(priced, h.pricing)),
	}, nil
}

func (h *Handler) getBasket(w http.ResponseWriter, r *http.Request) {
	v, err := h.basketView(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, v)
}

func (h *Handler) addBasketItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := h.decode(r, &req); err != nil {
		h.writeBadRequest(w, r, "invalid JSON body")
		return
	}
	if req.EntryID == "" {
		h.writeBadRequest(w, r, "entryId is required")
		return
	}

	if err := h.basket.Add(r.Context(), req.EntryID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondBasket(w, r)
}

func (h *Handler) setBasketQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := h.decode(r, &req); err != nil {
		h.writeBadRequest(w, r, "invalid JSON body")
		return
	}

	h.basket.SetQuantity(chi.URLParam(r, "entryID"), req.Quantity)
	h.respondBasket(w, r)
}

func (h *Handler) removeBasketItem(w http.ResponseWriter, r *http.Request) {
	h.basket.Remove(chi.URLParam(r, "entryID"))
	h.respondBasket(w, r)
}

// respondBasket replies with the post-mutation basket view so the caller never
// needs a follow-up read.
func (h *Handler) respondBasket(w http.ResponseWriter, r *http.Request) {
	v, err := h.basketView(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, v)
}
