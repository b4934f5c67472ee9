// Package notify implements the simulated confirmation email senders. No
// email leaves the process; deliveries are logged so the simulated effect is
// observable. A real mailer would replace LogNotifier behind the same
// interfaces.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/bellavista/storefront/internal/domain/checkout"
	"github.com/bellavista/storefront/internal/domain/reservation"
)

var (
	_ checkout.Notifier    = (*LogNotifier)(nil)
	_ reservation.Notifier = (*LogNotifier)(nil)
)

// LogNotifier logs each confirmation instead of sending it.
type LogNotifier struct {
	lg *zap.Logger
}

// NewLogNotifier creates a LogNotifier writing to the given logger.
func NewLogNotifier(lg *zap.Logger) *LogNotifier {
	return &LogNotifier{lg: lg}
}

// SendOrderConfirmation implements checkout.Notifier.
func (n *LogNotifier) SendOrderConfirmation(_ context.Context, o *checkout.Order) error {
	n.lg.Info("order confirmation email simulated",
		zap.String("order_number", o.ID),
		zap.String("email", o.Delivery.Email),
		zap.String("total", o.Breakdown.Total.StringFixed(2)),
	)
	return nil
}

// SendReservationConfirmation implements reservation.Notifier.
func (n *LogNotifier) SendReservationConfirmation(_ context.Context, c *reservation.Confirmation) error {
	n.lg.Info("reservation confirmation email simulated",
		zap.String("confirmation_number", c.ID),
		zap.String("email", c.Email),
		zap.String("date", c.Date),
		zap.String("time", c.Time),
		zap.Int("party_size", c.PartySize),
	)
	return nil
}
