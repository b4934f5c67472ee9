// Package reservation implements the table reservation flow, independent of
// the basket and order pipeline.
package reservation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-faster/errors"

	"github.com/bellavista/storefront/internal/domain/validate"
	"github.com/bellavista/storefront/internal/ids"
)

// State enumerates the reservation flow states.
type State string

const (
	// StateIdle means the reservation form is closed.
	StateIdle State = "idle"
	// StateFormOpen means the form is open and editable.
	StateFormOpen State = "form_open"
	// StateSubmitting means a submission round trip is in flight.
	StateSubmitting State = "submitting"
	// StateConfirmed means a confirmation awaits dismissal.
	StateConfirmed State = "confirmed"
)

var (
	// ErrInvalidTransition is returned when an intent does not apply to the
	// current state.
	ErrInvalidTransition = errors.New("invalid reservation transition")
	// ErrSubmitInProgress rejects re-submission while a round trip is in
	// flight, so a double click cannot create duplicate reservations.
	ErrSubmitInProgress = errors.New("reservation submission already in progress")
)

// TimeSlots is the fixed list of reservable dinner seatings.
var TimeSlots = []string{
	"5:00 PM", "5:30 PM", "6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM",
	"8:00 PM", "8:30 PM", "9:00 PM", "9:30 PM", "10:00 PM",
}

// Party size bounds and the form default.
const (
	MinPartySize     = 1
	MaxPartySize     = 10
	DefaultPartySize = 2
)

// dateLayout is the wire format for reservation dates.
const dateLayout = "2006-01-02"

// Request holds one reservation form submission. Date uses YYYY-MM-DD; Time
// must be one of TimeSlots.
type Request struct {
	Name            string
	Email           string
	Phone           string
	Date            string
	Time            string
	PartySize       int
	SpecialRequests string
}

// DefaultRequest returns the form defaults: empty fields, party of two.
func DefaultRequest() Request {
	return Request{PartySize: DefaultPartySize}
}

// Confirmation is a confirmed reservation: the request plus a generated
// confirmation identifier. Discarded on dismissal.
type Confirmation struct {
	Request
	ID        string
	CreatedAt time.Time
}

// Repository records confirmed reservations. In-memory in this system.
type Repository interface {
	Create(ctx context.Context, c *Confirmation) error
}

// Notifier sends the reservation confirmation email. Simulated.
type Notifier interface {
	SendReservationConfirmation(ctx context.Context, c *Confirmation) error
}

// Option configures a Flow.
type Option func(*Flow)

// WithIDFunc overrides confirmation ID generation.
func WithIDFunc(fn func() string) Option {
	return func(f *Flow) { f.newID = fn }
}

// WithClock overrides the time source used for date validation.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// WithSubmitDelay overrides the simulated network round trip duration.
// Tests pass zero.
func WithSubmitDelay(d time.Duration) Option {
	return func(f *Flow) { f.delay = d }
}

// Flow sequences Idle -> FormOpen -> Submitting -> Confirmed -> Idle.
// Submission waits out a simulated, cancellable network delay before
// confirming; the Submitting state blocks concurrent re-submission.
type Flow struct {
	reservations Repository
	notifier     Notifier
	newID        func() string
	now          func() time.Time
	delay        time.Duration

	mu    sync.Mutex
	state State
	draft Request
	conf  *Confirmation
}

// NewFlow creates a reservation flow in the Idle state with a one second
// simulated submission delay.
func NewFlow(reservations Repository, notifier Notifier, opts ...Option) *Flow {
	f := &Flow{
		reservations: reservations,
		notifier:     notifier,
		newID:        ids.ConfirmationNumber,
		now:          time.Now,
		delay:        time.Second,
		state:        StateIdle,
		draft:        DefaultRequest(),
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

// Draft returns the current form contents.
func (f *Flow) Draft() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Confirmation returns the confirmed reservation, or nil outside Confirmed.
func (f *Flow) Confirmation() *Confirmation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conf
}

// Open transitions Idle -> FormOpen with fresh form defaults.
func (f *Flow) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return errors.Wrapf(ErrInvalidTransition, "open from %s", f.state)
	}
	f.state = StateFormOpen
	f.draft = DefaultRequest()
	return nil
}

// Close abandons an open form, returning to Idle.
func (f *Flow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateFormOpen {
		return errors.Wrapf(ErrInvalidTransition, "close from %s", f.state)
	}
	f.state = StateIdle
	f.draft = DefaultRequest()
	return nil
}

// Submit validates the request and, after the simulated round trip, records
// a confirmation and transitions to Confirmed. Validation failures keep the
// flow in FormOpen with the submitted values as the draft. Cancelling ctx
// during the delay aborts the submission and reopens the form.
func (f *Flow) Submit(ctx context.Context, req Request) (*Confirmation, error) {
	f.mu.Lock()
	switch f.state {
	case StateFormOpen:
	case StateSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	default:
		f.mu.Unlock()
		return nil, errors.Wrapf(ErrInvalidTransition, "submit from %s", f.state)
	}
	f.draft = req
	if err := f.validate(req); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	// Simulated network round trip. Real reservations would go to a booking
	// backend here; the delay models that latency and is cancellable.
	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			f.setState(StateFormOpen)
			return nil, errors.Wrap(ctx.Err(), "submission cancelled")
		case <-timer.C:
		}
	}

	conf := &Confirmation{
		Request:   req,
		ID:        f.newID(),
		CreatedAt: f.now(),
	}
	if err := f.reservations.Create(ctx, conf); err != nil {
		f.setState(StateFormOpen)
		return nil, errors.Wrap(err, "create reservation")
	}
	_ = f.notifier.SendReservationConfirmation(ctx, conf)

	f.mu.Lock()
	f.conf = conf
	f.draft = DefaultRequest()
	f.state = StateConfirmed
	f.mu.Unlock()
	return conf, nil
}

// Dismiss transitions Confirmed -> Idle, discarding the confirmation.
func (f *Flow) Dismiss() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateConfirmed {
		return errors.Wrapf(ErrInvalidTransition, "dismiss from %s", f.state)
	}
	f.conf = nil
	f.state = StateIdle
	return nil
}

// validate checks the request fields. The date must be today or later in the
// flow clock's location; the time must be one of the fixed slots.
func (f *Flow) validate(req Request) error {
	var errs validate.Errors

	errs.Require("name", req.Name)
	errs.Require("email", req.Email)
	errs.Require("phone", req.Phone)

	if req.Email != "" && !validate.Email(req.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if req.Phone != "" && !validate.Phone(req.Phone) {
		errs.Add("phone", "must be a valid phone number")
	}

	if req.Date == "" {
		errs.Add("date", "required")
	} else if _, err := time.Parse(dateLayout, req.Date); err != nil {
		errs.Add("date", "must be formatted as YYYY-MM-DD")
	} else if req.Date < f.now().Format(dateLayout) {
		errs.Add("date", "cannot be in the past")
	}

	if req.Time == "" {
		errs.Add("time", "required")
	} else if !slices.Contains(TimeSlots, req.Time) {
		errs.Add("time", "must be one of the offered time slots")
	}

	if req.PartySize < MinPartySize || req.PartySize > MaxPartySize {
		errs.Add("partySize", "must be between 1 and 10")
	}

	return errs.ErrOrNil()
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
