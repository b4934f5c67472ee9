package checkout

import (
	"github.com/bellavista/storefront/internal/domain/validate"
)

// Payment methods accepted at checkout. Payment processing itself is
// simulated; the choice is only recorded on the order.
const (
	PaymentCard = "card"
	PaymentCash = "cash"
)

// DeliveryInfo holds the delivery form contents. Every field except
// Instructions is required; PaymentMethod defaults to card when empty.
type DeliveryInfo struct {
	FullName      string
	Phone         string
	Email         string
	Address       string
	City          string
	PostalCode    string
	Instructions  string
	PaymentMethod string
}

// Validate checks required fields and advisory email/phone formats. It
// returns a validate.Errors listing every failing field, or nil.
func (d DeliveryInfo) Validate() error {
	var errs validate.Errors

	errs.Require("fullName", d.FullName)
	errs.Require("phone", d.Phone)
	errs.Require("email", d.Email)
	errs.Require("address", d.Address)
	errs.Require("city", d.City)
	errs.Require("postalCode", d.PostalCode)

	if d.Email != "" && !validate.Email(d.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if d.Phone != "" && !validate.Phone(d.Phone) {
		errs.Add("phone", "must be a valid phone number")
	}
	if d.PaymentMethod != "" && d.PaymentMethod != PaymentCard && d.PaymentMethod != PaymentCash {
		errs.Add("paymentMethod", "must be card or cash")
	}

	return errs.ErrOrNil()
}
