// Package pricing computes the price breakdown for a basket snapshot. All
// arithmetic uses decimal values; nothing is rounded until display, so totals
// stay exact across many line items.
package pricing

import "github.com/shopspring/decimal"

// Config holds the fee table for one deployment context.
type Config struct {
	// FreeDeliveryThreshold is the subtotal above which delivery is free.
	// The comparison is strict: a subtotal exactly at the threshold still
	// pays the flat fee.
	FreeDeliveryThreshold decimal.Decimal
	// FlatDeliveryFee applies whenever the threshold is not exceeded.
	FlatDeliveryFee decimal.Decimal
	// TaxRate is a decimal fraction, e.g. 0.08 for 8%.
	TaxRate decimal.Decimal
}

// StandardTier is the default fee table: free delivery over $30, $4.99 flat
// fee, 8% tax.
func StandardTier() Config {
	return Config{
		FreeDeliveryThreshold: decimal.NewFromInt(30),
		FlatDeliveryFee:       decimal.RequireFromString("4.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// PremiumTier is the fine-dining fee table: free delivery over $50, $8.99
// flat fee, 8% tax.
func PremiumTier() Config {
	return Config{
		FreeDeliveryThreshold: decimal.NewFromInt(50),
		FlatDeliveryFee:       decimal.RequireFromString("8.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// Item is one priced basket line for breakdown calculation.
type Item struct {
	Price    decimal.Decimal
	Quantity int
}

// Breakdown is the derived price of a basket. It is recomputed on every read
// and never stored except inside an order snapshot.
type Breakdown struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Price computes the breakdown for the given items. It is a pure function:
// deterministic, no side effects.
//
// An empty basket yields subtotal 0 and a delivery fee equal to the flat fee,
// because 0 does not exceed the threshold. That edge case is intentional and
// preserved; the checkout flow guards against empty-basket orders instead.
func Price(items []Item, cfg Config) Breakdown {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	fee := cfg.FlatDeliveryFee
	if subtotal.GreaterThan(cfg.FreeDeliveryThreshold) {
		fee = decimal.Zero
	}

	tax := subtotal.Mul(cfg.TaxRate)

	return Breakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}
}
