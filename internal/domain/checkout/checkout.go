// Package checkout implements the state machine that converts a basket into a
// finalized order: basket review, delivery form, submission, confirmation.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"

	"github.com/bellavista/storefront/internal/domain/basket"
	"github.com/bellavista/storefront/internal/domain/pricing"
	"github.com/bellavista/storefront/internal/ids"
)

// State enumerates the checkout flow states.
type State string

const (
	// StateIdle means no checkout is in progress.
	StateIdle State = "idle"
	// StateBasketReview means the visitor is reviewing basket contents.
	StateBasketReview State = "basket_review"
	// StateDeliveryForm means the delivery form is open.
	StateDeliveryForm State = "delivery_form"
	// StateSubmitting means a submission is being processed.
	StateSubmitting State = "submitting"
	// StateConfirmed means an order was placed and awaits dismissal.
	StateConfirmed State = "confirmed"
)

var (
	// ErrInvalidTransition is returned when an intent does not apply to the
	// current state. These indicate stale UI, not user mistakes.
	ErrInvalidTransition = errors.New("invalid checkout transition")
	// ErrEmptyBasket is returned when checkout is advanced with no lines.
	ErrEmptyBasket = errors.New("basket is empty")
)

// Order is the immutable snapshot produced exactly once per submission:
// resolved lines, price breakdown, delivery details, and a generated ID.
type Order struct {
	ID        string
	Lines     []basket.Line
	Breakdown pricing.Breakdown
	Delivery  DeliveryInfo
	CreatedAt time.Time
}

// Repository persists placed orders. The in-memory implementation is the only
// one in this system; a real store is an integration point.
type Repository interface {
	Create(ctx context.Context, o *Order) error
}

// Notifier sends the order confirmation email. Simulated in this system.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, o *Order) error
}

// Payments charges for an order. Simulated in this system.
type Payments interface {
	Charge(ctx context.Context, o *Order) error
}

// NopPayments is a Payments that accepts every charge.
type NopPayments struct{}

// Charge implements Payments.
func (NopPayments) Charge(context.Context, *Order) error { return nil }

// IDFunc generates order identifiers. Injectable so tests can assert
// deterministic IDs.
type IDFunc func() string

// Option configures a Flow.
type Option func(*Flow)

// WithIDFunc overrides order ID generation.
func WithIDFunc(fn IDFunc) Option {
	return func(f *Flow) { f.newID = fn }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// Flow sequences Idle -> BasketReview -> DeliveryForm -> Submitting ->
// Confirmed -> Idle. It consumes the basket engine's contents at submission
// time and clears the basket once an order snapshot exists.
type Flow struct {
	basket   *basket.Engine
	pricing  pricing.Config
	orders   Repository
	payments Payments
	notifier Notifier
	newID    IDFunc
	now      func() time.Time

	mu    sync.Mutex
	state State
	draft DeliveryInfo
	order *Order
}

// NewFlow creates a checkout flow in the Idle state.
func NewFlow(b *basket.Engine, cfg pricing.Config, orders Repository, payments Payments, notifier Notifier, opts ...Option) *Flow {
	f := &Flow{
		basket:   b,
		pricing:  cfg,
		orders:   orders,
		payments: payments,
		notifier: notifier,
		newID:    ids.OrderNumber,
		now:      time.Now,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns the in-progress delivery form contents.
func (f *Flow) Draft() DeliveryInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Order returns the confirmed order, or nil outside the Confirmed state.
func (f *Flow) Order() *Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

// OpenBasket transitions Idle -> BasketReview.
func (f *Flow) OpenBasket() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return errors.Wrapf(ErrInvalidTransition, "open basket from %s", f.state)
	}
	f.state = StateBasketReview
	return nil
}

// Close abandons the checkout from BasketReview or DeliveryForm, discarding
// the delivery draft. The basket itself is untouched.
func (f *Flow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateBasketReview && f.state != StateDeliveryForm {
		return errors.Wrapf(ErrInvalidTransition, "close from %s", f.state)
	}
	f.state = StateIdle
	f.draft = DeliveryInfo{}
	return nil
}

// Proceed transitions BasketReview -> DeliveryForm. An empty basket rejects
// the transition: a zero-line order must never reach pricing.
func (f *Flow) Proceed() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateBasketReview {
		return errors.Wrapf(ErrInvalidTransition, "proceed from %s", f.state)
	}
	if f.basket.IsEmpty() {
		return ErrEmptyBasket
	}
	f.state = StateDeliveryForm
	return nil
}

// Back transitions DeliveryForm -> BasketReview. The delivery draft is reset
// so a partial form never leaks into a later, different checkout.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateDeliveryForm {
		return errors.Wrapf(ErrInvalidTransition, "back from %s", f.state)
	}
	f.state = StateBasketReview
	f.draft = DeliveryInfo{}
	return nil
}

// Submit validates the delivery info and places the order: it snapshots the
// basket, computes the breakdown, generates an ID, charges and persists
// through the extension points, clears the basket, and transitions to
// Confirmed. Validation failures keep the flow in DeliveryForm with the
// submitted values as the draft.
func (f *Flow) Submit(ctx context.Context, info DeliveryInfo) (*Order, error) {
	f.mu.Lock()
	if f.state != StateDeliveryForm {
		f.mu.Unlock()
		return nil, errors.Wrapf(ErrInvalidTransition, "submit from %s", f.state)
	}
	f.draft = info
	if err := info.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	o, err := f.placeOrder(ctx, info)
	if err != nil {
		f.setState(StateDeliveryForm)
		return nil, err
	}

	f.mu.Lock()
	f.order = o
	f.draft = DeliveryInfo{}
	f.state = StateConfirmed
	f.mu.Unlock()
	return o, nil
}

func (f *Flow) placeOrder(ctx context.Context, info DeliveryInfo) (*Order, error) {
	lines, err := f.basket.Snapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot basket")
	}
	// Proceed already guards this; re-check in case the basket was emptied
	// between form open and submission.
	if len(lines) == 0 {
		return nil, ErrEmptyBasket
	}

	items := make([]pricing.Item, len(lines))
	for i, l := range lines {
		items[i] = pricing.Item{Price: l.Entry.Price, Quantity: l.Quantity}
	}

	o := &Order{
		ID:        f.newID(),
		Lines:     lines,
		Breakdown: pricing.Price(items, f.pricing),
		Delivery:  info,
		CreatedAt: f.now(),
	}

	if err := f.payments.Charge(ctx, o); err != nil {
		return nil, errors.Wrap(err, "charge payment")
	}
	if err := f.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	// The confirmation email is simulated and best-effort; a failure must not
	// undo an already placed order.
	_ = f.notifier.SendOrderConfirmation(ctx, o)

	f.basket.Clear()
	return o, nil
}

// Dismiss transitions Confirmed -> Idle, discarding the order reference.
func (f *Flow) Dismiss() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateConfirmed {
		return errors.Wrapf(ErrInvalidTransition, "dismiss from %s", f.state)
	}
	f.order = nil
	f.state = StateIdle
	return nil
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
