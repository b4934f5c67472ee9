package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellavista/storefront/internal/domain/basket"
	"github.com/bellavista/storefront/internal/domain/catalog"
	"github.com/bellavista/storefront/internal/domain/pricing"
	"github.com/bellavista/storefront/internal/domain/validate"
)

// --- Mock implementations ---

type mockCatalog struct {
	entries []catalog.Entry
}

func (m *mockCatalog) List(_ context.Context) ([]catalog.Entry, error) {
	return m.entries, nil
}

func (m *mockCatalog) GetByID(_ context.Context, id string) (*catalog.Entry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (m *mockCatalog) GetByIDs(_ context.Context, ids []string) ([]catalog.Entry, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []catalog.Entry
	for _, e := range m.entries {
		if _, ok := want[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockOrderRepo struct {
	lastOrder *Order
	err       error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	m.lastOrder = o
	return m.err
}

type mockNotifier struct {
	sent []*Order
	err  error
}

func (m *mockNotifier) SendOrderConfirmation(_ context.Context, o *Order) error {
	m.sent = append(m.sent, o)
	return m.err
}

type mockPayments struct {
	charged []*Order
	err     error
}

func (m *mockPayments) Charge(_ context.Context, o *Order) error {
	m.charged = append(m.charged, o)
	return m.err
}

// --- Helpers ---

func validDelivery() DeliveryInfo {
	return DeliveryInfo{
		FullName:      "Maria Rossi",
		Phone:         "555-123-4567",
		Email:         "maria@example.com",
		Address:       "12 Vine Street",
		City:          "Springfield",
		PostalCode:    "62704",
		PaymentMethod: PaymentCard,
	}
}

func newBasket(t *testing.T, ids ...string) *basket.Engine {
	t.Helper()
	b := basket.New(&mockCatalog{entries: []catalog.Entry{
		{ID: "1", Name: "Truffle Arancini", Price: decimal.RequireFromString("14.99")},
		{ID: "4", Name: "Grilled Salmon", Price: decimal.RequireFromString("28.99")},
	}})
	for _, id := range ids {
		require.NoError(t, b.Add(context.Background(), id))
	}
	return b
}

type flowDeps struct {
	basket   *basket.Engine
	orders   *mockOrderRepo
	payments *mockPayments
	notifier *mockNotifier
	flow     *Flow
}

func newTestFlow(t *testing.T, ids ...string) flowDeps {
	t.Helper()
	d := flowDeps{
		basket:   newBasket(t, ids...),
		orders:   &mockOrderRepo{},
		payments: &mockPayments{},
		notifier: &mockNotifier{},
	}
	d.flow = NewFlow(d.basket, pricing.StandardTier(), d.orders, d.payments, d.notifier,
		WithIDFunc(func() string { return "ORD123456" }),
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC) }),
	)
	return d
}

func advanceToForm(t *testing.T, f *Flow) {
	t.Helper()
	require.NoError(t, f.OpenBasket())
	require.NoError(t, f.Proceed())
}

// --- Tests ---

func TestFlow_StartsIdle(t *testing.T) {
	d := newTestFlow(t)
	assert.Equal(t, StateIdle, d.flow.State())
	assert.Nil(t, d.flow.Order())
}

func TestProceed_EmptyBasketRejected(t *testing.T) {
	d := newTestFlow(t)
	require.NoError(t, d.flow.OpenBasket())

	err := d.flow.Proceed()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyBasket))
	assert.Equal(t, StateBasketReview, d.flow.State(), "flow stays in basket review")
}

func TestSubmit_HappyPath(t *testing.T) {
	ctx := context.Background()
	d := newTestFlow(t, "1", "4", "4")
	advanceToForm(t, d.flow)

	o, err := d.flow.Submit(ctx, validDelivery())
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, StateConfirmed, d.flow.State())
	assert.Equal(t, "ORD123456", o.ID)
	assert.Equal(t, time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC), o.CreatedAt)

	// Subtotal 14.99 + 2*28.99 = 72.97 > 30, so delivery is free.
	assert.True(t, decimal.RequireFromString("72.97").Equal(o.Breakdown.Subtotal), "subtotal %s", o.Breakdown.Subtotal)
	assert.True(t, o.Breakdown.DeliveryFee.IsZero())

	require.Len(t, o.Lines, 2)
	assert.Equal(t, "1", o.Lines[0].Entry.ID)
	assert.Equal(t, 2, o.Lines[1].Quantity)

	assert.Same(t, o, d.orders.lastOrder, "order persisted")
	require.Len(t, d.payments.charged, 1)
	require.Len(t, d.notifier.sent, 1)
	assert.True(t, d.basket.IsEmpty(), "basket cleared after order snapshot")
}

func TestSubmit_ValidationFailureKeepsForm(t *testing.T) {
	ctx := context.Background()
	d := newTestFlow(t, "1")
	advanceToForm(t, d.flow)

	info := validDelivery()
	info.Email = "not-an-email"
	info.City = ""

	_, err := d.flow.Submit(ctx, info)
	require.Error(t, err)

	var verrs validate.Errors
	require.True(t, errors.As(err, &verrs))
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field] = fe.Message
	}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "city")

	assert.Equal(t, StateDeliveryForm, d.flow.State(), "validation failure is not a transition")
	assert.Equal(t, info, d.flow.Draft(), "submitted values kept as the draft")
	assert.False(t, d.basket.IsEmpty())
	assert.Nil(t, d.orders.lastOrder)
}

func TestSubmit_RepoErrorRevertsToForm(t *testing.T) {
	ctx := context.Background()
	d := newTestFlow(t, "1")
	d.orders.err = errors.New("store down")
	advanceToForm(t, d.flow)

	_, err := d.flow.Submit(ctx, validDelivery())
	require.Error(t, err)

	assert.Equal(t, StateDeliveryForm, d.flow.State())
	assert.False(t, d.basket.IsEmpty(), "basket survives a failed submission")
	assert.Nil(t, d.flow.Order())
}

func TestSubmit_PaymentErrorRevertsToForm(t *testing.T) {
	ctx := context.Background()
	d := newTestFlow(t, "1")
	d.payments.err = errors.New("declined")
	advanceToForm(t, d.flow)

	_, err := d.flow.Submit(ctx, validDelivery())
	require.Error(t, err)

	assert.Equal(t, StateDeliveryForm, d.flow.State())
	assert.Nil(t, d.orders.lastOrder, "nothing persisted when the charge fails")
}

func TestSubmit_NotifierFailureDoesNotUndoOrder(t *testing.T) {
	ctx := context.Background()
	d := newTestFlow(t, "1")
	d.notifier.err = errors.New("smtp down")
	advanceToForm(t, d.flow)

	o, err := d.flow.Submit(ctx, validDelivery())
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, StateConfirmed, d.flow.State())
}

func TestBack_ResetsDraft(t *testing.T) {
	ctx := context.Background()
	d := newTestFlow(t, "1")
	advanceToForm(t, d.flow)

	// A failed submission leaves a partially filled draft behind.
	info := validDelivery()
	info.Email = "nope"
	_, err := d.flow.Submit(ctx, info)
	require.Error(t, err)
	require.NotEqual(t, DeliveryInfo{}, d.flow.Draft())

	require.NoError(t, d.flow.Back())
	assert.Equal(t, StateBasketReview, d.flow.State())
	assert.Equal(t, DeliveryInfo{}, d.flow.Draft())
}

func TestClose_DiscardsDraftKeepsBasket(t *testing.T) {
	d := newTestFlow(t, "1")
	advanceToForm(t, d.flow)

	require.NoError(t, d.flow.Close())
	assert.Equal(t, StateIdle, d.flow.State())
	assert.Equal(t, DeliveryInfo{}, d.flow.Draft())
	assert.False(t, d.basket.IsEmpty())
}

func TestDismiss_ReturnsToIdle(t *testing.T) {
	ctx := context.Background()
	d := newTestFlow(t, "1")
	advanceToForm(t, d.flow)
	_, err := d.flow.Submit(ctx, validDelivery())
	require.NoError(t, err)

	require.NoError(t, d.flow.Dismiss())
	assert.Equal(t, StateIdle, d.flow.State())
	assert.Nil(t, d.flow.Order())
}

func TestInvalidTransitions(t *testing.T) {
	ctx := context.Background()
	d := newTestFlow(t, "1")

	// Every intent out of place is ErrInvalidTransition.
	assert.True(t, errors.Is(d.flow.Proceed(), ErrInvalidTransition))
	assert.True(t, errors.Is(d.flow.Back(), ErrInvalidTransition))
	assert.True(t, errors.Is(d.flow.Dismiss(), ErrInvalidTransition))
	assert.True(t, errors.Is(d.flow.Close(), ErrInvalidTransition))
	_, err := d.flow.Submit(ctx, validDelivery())
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	require.NoError(t, d.flow.OpenBasket())
	assert.True(t, errors.Is(d.flow.OpenBasket(), ErrInvalidTransition))
}

func TestDeliveryInfo_Validate(t *testing.T) {
	t.Run("all required fields reported at once", func(t *testing.T) {
		err := DeliveryInfo{}.Validate()
		require.Error(t, err)

		var verrs validate.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 6)
	})

	t.Run("instructions optional", func(t *testing.T) {
		info := validDelivery()
		info.Instructions = ""
		assert.NoError(t, info.Validate())
	})

	t.Run("payment method checked when present", func(t *testing.T) {
		info := validDelivery()
		info.PaymentMethod = "bitcoin"
		assert.Error(t, info.Validate())

		info.PaymentMethod = PaymentCash
		assert.NoError(t, info.Validate())

		info.PaymentMethod = ""
		assert.NoError(t, info.Validate())
	})

	t.Run("phone format", func(t *testing.T) {
		info := validDelivery()
		info.Phone = "call me"
		assert.Error(t, info.Validate())

		info.Phone = "+1 (555) 123-4567"
		assert.NoError(t, info.Validate())
	})
}
