// Package handler exposes the storefront engines over a small JSON API. One
// handler owns one basket, checkout, and reservation flow; there is no session
// layer.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/bellavista/storefront/internal/domain/basket"
	"github.com/bellavista/storefront/internal/domain/catalog"
	"github.com/bellavista/storefront/internal/domain/checkout"
	"github.com/bellavista/storefront/internal/domain/pricing"
	"github.com/bellavista/storefront/internal/domain/reservation"
	"github.com/bellavista/storefront/internal/domain/validate"
)

// Handler serves the storefront API.
type Handler struct {
	menu           catalog.Repository
	wines          catalog.Repository
	menuCategories []string
	wineCategories []string

	basket      *basket.Engine
	pricing     pricing.Config
	checkout    *checkout.Flow
	reservation *reservation.Flow

	imageBaseURL string
}

// Options collects the handler's collaborators.
type Options struct {
	Menu           catalog.Repository
	Wines          catalog.Repository
	MenuCategories []string
	WineCategories []string
	Basket         *basket.Engine
	Pricing        pricing.Config
	Checkout       *checkout.Flow
	Reservation    *reservation.Flow
	// ImageBaseURL is prepended to the relative image paths in the catalogs.
	ImageBaseURL string
}

// New creates the handler.
func New(opts Options) *Handler {
	return &Handler{
		menu:           opts.Menu,
		wines:          opts.Wines,
		menuCategories: opts.MenuCategories,
		wineCategories: opts.WineCategories,
		basket:         opts.Basket,
		pricing:        opts.Pricing,
		checkout:       opts.Checkout,
		reservation:    opts.Reservation,
		imageBaseURL:   opts.ImageBaseURL,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/menu", h.listMenu)
	r.Get("/menu/categories", h.menuCategoryList)
	r.Get("/wines", h.listWines)
	r.Get("/wines/categories", h.wineCategoryList)

	r.Route("/basket", func(r chi.Router) {
		r.Get("/", h.getBasket)
		r.Post("/items", h.addBasketItem)
		r.Put("/items/{entryID}", h.setBasketQuantity)
		r.Delete("/items/{entryID}", h.removeBasketItem)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", h.getCheckout)
		r.Post("/open", h.intent(h.checkout.OpenBasket, h.checkoutView))
		r.Post("/close", h.intent(h.checkout.Close, h.checkoutView))
		r.Post("/proceed", h.intent(h.checkout.Proceed, h.checkoutView))
		r.Post("/back", h.intent(h.checkout.Back, h.checkoutView))
		r.Post("/submit", h.submitCheckout)
		r.Post("/dismiss", h.intent(h.checkout.Dismiss, h.checkoutView))
	})

	r.Route("/reservation", func(r chi.Router) {
		r.Get("/", h.getReservation)
		r.Post("/open", h.intent(h.reservation.Open, h.reservationView))
		r.Post("/close", h.intent(h.reservation.Close, h.reservationView))
		r.Post("/submit", h.submitReservation)
		r.Post("/dismiss", h.intent(h.reservation.Dismiss, h.reservationView))
	})

	return r
}

// intent adapts a parameterless flow transition into a handler that replies
// with the resulting view.
func (h *Handler) intent(fn func() error, view func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(); err != nil {
			h.writeError(w, r, err)
			return
		}
		v, err := view(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, r, http.StatusOK, v)
	}
}

// errorResponse is the uniform error body. Fields is populated only for
// validation failures.
type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Error("encode response", zap.Error(err))
	}
}

// writeError maps domain errors onto the API's error taxonomy: validation
// failures to 422 with per-field messages, precondition violations to 409,
// unknown catalog references to 422, everything else to 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			// First message per field wins.
			if _, ok := fields[fe.Field]; !ok {
				fields[fe.Field] = fe.Message
			}
		}
		h.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Code:    "validation_failed",
			Message: "validation failed",
			Fields:  fields,
		})
	case errors.Is(err, catalog.ErrNotFound):
		h.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Code:    "unknown_entry",
			Message: "unknown catalog entry",
		})
	case errors.Is(err, checkout.ErrEmptyBasket):
		h.writeJSON(w, r, http.StatusConflict, errorResponse{
			Code:    "empty_basket",
			Message: "basket is empty",
		})
	case errors.Is(err, reservation.ErrSubmitInProgress):
		h.writeJSON(w, r, http.StatusConflict, errorResponse{
			Code:    "submit_in_progress",
			Message: "a submission is already in progress",
		})
	case errors.Is(err, checkout.ErrInvalidTransition), errors.Is(err, reservation.ErrInvalidTransition):
		h.writeJSON(w, r, http.StatusConflict, errorResponse{
			Code:    "invalid_state",
			Message: err.Error(),
		})
	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		h.writeJSON(w, r, http.StatusInternalServerError, errorResponse{
			Code:    "internal_error",
			Message: "internal error",
		})
	}
}

// writeBadRequest reports a malformed request body.
func (h *Handler) writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusBadRequest, errorResponse{
		Code:    "bad_request",
		Message: msg,
	})
}

func (h *Handler) decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
