// Package pricing derives shipping, tax and grand total from a cart
// subtotal. Arithmetic stays in float64; rounding happens only in Display.
package pricing

import "github.com/shopspring/decimal"

const (
	FreeShippingThreshold = 75.00
	FlatShipping          = 8.99
	TaxRate               = 0.08
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Compute applies the flat business rules: free shipping strictly above the
// threshold, flat tax on the subtotal.
func Compute(subtotal float64) Totals {
	shipping := FlatShipping
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// Displayed is Totals rendered with two decimals.
type Displayed struct {
	Subtotal     string `json:"subtotal"`
	Shipping     string `json:"shipping"`
	Tax          string `json:"tax"`
	Total        string `json:"total"`
	FreeShipping bool   `json:"freeShipping"`
}

func Display(t Totals) Displayed {
	return Displayed{
		Subtotal:     Money(t.Subtotal),
		Shipping:     Money(t.Shipping),
		Tax:          Money(t.Tax),
		Total:        Money(t.Total),
		FreeShipping: t.Shipping == 0,
	}
}

// Money formats v with exactly two decimals, rounding half away from zero.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
