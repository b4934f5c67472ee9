package handler

import (
	"net/http"
	"time"

	"github.com/bellavista/storefront/internal/domain/checkout"
)

// deliveryInfoJSON is the wire shape of the delivery form.
type deliveryInfoJSON struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Instructions  string `json:"instructions,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

func (d deliveryInfoJSON) domain() checkout.DeliveryInfo {
	return checkout.DeliveryInfo{
		FullName:      d.FullName,
		Phone:         d.Phone,
		Email:         d.Email,
		Address:       d.Address,
		City:          d.City,
		PostalCode:    d.PostalCode,
		Instructions:  d.Instructions,
		PaymentMethod: d.PaymentMethod,
	}
}

func deliveryView(d checkout.DeliveryInfo) deliveryInfoJSON {
	return deliveryInfoJSON{
		FullName:      d.FullName,
		Phone:         d.Phone,
		Email:         d.Email,
		Address:       d.Address,
		City:          d.City,
		PostalCode:    d.PostalCode,
		Instructions:  d.Instructions,
		PaymentMethod: d.PaymentMethod,
	}
}

// orderResponse is a confirmed order snapshot.
type orderResponse struct {
	OrderNumber string               `json:"orderNumber"`
	Items       []basketLineResponse `json:"items"`
	Breakdown   breakdownResponse    `json:"breakdown"`
	Delivery    deliveryInfoJSON     `json:"delivery"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type checkoutResponse struct {
	State checkout.State   `json:"state"`
	Draft deliveryInfoJSON `json:"draft"`
	Order *orderResponse   `json:"order,omitempty"`
}

func (h *Handler) orderView(o *checkout.Order) *orderResponse {
	items := make([]basketLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = basketLineResponse{
			ID:        l.Entry.ID,
			Name:      l.Entry.Name,
			Price:     l.Entry.Price,
			Image:     h.imageBaseURL + l.Entry.Image,
			Quantity:  l.Quantity,
			LineTotal: l.Entry.Price.Mul(intDecimal(l.Quantity)),
		}
	}
	return &orderResponse{
		OrderNumber: o.ID,
		Items:       items,
		Breakdown:   breakdownView(o.Breakdown),
		Delivery:    deliveryView(o.Delivery),
		CreatedAt:   o.CreatedAt,
	}
}

func (h *Handler) checkoutView(*http.Request) (any, error) {
	resp := checkoutResponse{
		State: h.checkout.State(),
		Draft: deliveryView(h.checkout.Draft()),
	}
	if o := h.checkout.Order(); o != nil {
		resp.Order = h.orderView(o)
	}
	return resp, nil
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	v, err := h.checkoutView(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, v)
}

func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	var req deliveryInfoJSON
	if err := h.decode(r, &req); err != nil {
		h.writeBadRequest(w, r, "invalid JSON body")
		return
	}

	o, err := h.checkout.Submit(r.Context(), req.domain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, checkoutResponse{
		State: h.checkout.State(),
		Draft: deliveryInfoJSON{},
		Order: h.orderView(o),
	})
}
