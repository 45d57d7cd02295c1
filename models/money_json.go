package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money fields are written with exactly two decimal places ("4.80", "0.00").
// Each MarshalJSON shadows the decimal fields of an alias type, which keeps
// the remaining fields and tags as declared. Decoding is left to decimal,
// which accepts any precision.

func cents(d decimal.Decimal) string { return d.StringFixed(2) }

func optionalCents(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := cents(*d)
	return &s
}

func (b PriceBreakdown) MarshalJSON() ([]byte, error) {
	type alias PriceBreakdown
	return json.Marshal(struct {
		alias
		Subtotal     string  `json:"subtotal"`
		Shipping     string  `json:"shipping"`
		Tax          string  `json:"tax"`
		Discount     string  `json:"discount"`
		Total        string  `json:"total"`
		MinimumOrder *string `json:"minimumOrder,omitempty"`
	}{
		alias:        alias(b),
		Subtotal:     cents(b.Subtotal),
		Shipping:     cents(b.Shipping),
		Tax:          cents(b.Tax),
		Discount:     cents(b.Discount),
		Total:        cents(b.Total),
		MinimumOrder: optionalCents(b.MinimumOrder),
	})
}

func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		Price         string  `json:"price"`
		OriginalPrice *string `json:"originalPrice,omitempty"`
	}{
		alias:         alias(p),
		Price:         cents(p.Price),
		OriginalPrice: optionalCents(p.OriginalPrice),
	})
}

func (l CartLine) MarshalJSON() ([]byte, error) {
	type alias CartLine
	return json.Marshal(struct {
		alias
		LineTotal string `json:"lineTotal"`
	}{alias: alias(l), LineTotal: cents(l.LineTotal)})
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type alias OrderItem
	return json.Marshal(struct {
		alias
		Price string `json:"price"`
	}{alias: alias(i), Price: cents(i.Price)})
}

func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		Total string `json:"total"`
	}{alias: alias(o), Total: cents(o.Total)})
}
