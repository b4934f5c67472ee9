package handler

import (
	"net/http"
	"time"

	"github.com/bellavista/storefront/internal/domain/reservation"
)

// reservationRequestJSON is the wire shape of the reservation form.
type reservationRequestJSON struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"partySize"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

func (r reservationRequestJSON) domain() reservation.Request {
	return reservation.Request{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
	}
}

func reservationRequestView(r reservation.Request) reservationRequestJSON {
	return reservationRequestJSON{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
	}
}

// confirmationResponse is a confirmed reservation.
type confirmationResponse struct {
	ConfirmationNumber string    `json:"confirmationNumber"`
	CreatedAt          time.Time `json:"createdAt"`
	reservationRequestJSON
}

type reservationResponse struct {
	State        reservation.State      `json:"state"`
	Draft        reservationRequestJSON `json:"draft"`
	TimeSlots    []string               `json:"timeSlots"`
	MinPartySize int                    `json:"minPartySize"`
	MaxPartySize int                    `json:"maxPartySize"`
	Confirmation *confirmationResponse  `json:"confirmation,omitempty"`
}

func confirmationView(c *reservation.Confirmation) *confirmationResponse {
	return &confirmationResponse{
		ConfirmationNumber:     c.ID,
		CreatedAt:              c.CreatedAt,
		reservationRequestJSON: reservationRequestView(c.Request),
	}
}

func (h *Handler) reservationView(*http.Request) (any, error) {
	resp := reservationResponse{
		State:        h.reservation.State(),
		Draft:        reservationRequestView(h.reservation.Draft()),
		TimeSlots:    reservation.TimeSlots,
		MinPartySize: reservation.MinPartySize,
		MaxPartySize: reservation.MaxPartySize,
	}
	if c := h.reservation.Confirmation(); c != nil {
		resp.Confirmation = confirmationView(c)
	}
	return resp, nil
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	v, err := h.reservationView(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, v)
}

func (h *Handler) submitReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequestJSON
	if err := h.decode(r, &req); err != nil {
		h.writeBadRequest(w, r, "invalid JSON body")
		return
	}

	c, err := h.reservation.Submit(r.Context(), req.domain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, reservationResponse{
		State:        h.reservation.State(),
		Draft:        reservationRequestView(h.reservation.Draft()),
		TimeSlots:    reservation.TimeSlots,
		MinPartySize: reservation.MinPartySize,
		MaxPartySize: reservation.MaxPartySize,
		Confirmation: confirmationView(c),
	})
}
