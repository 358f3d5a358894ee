package models

import "github.com/shopspring/decimal"

// CartItem represents one line of a buyer's cart. Quantity is always at
// least 1; a line is removed outright rather than kept at zero.
type CartItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Satuan      string          `json:"satuan"`
	ImageURL    string          `json:"image_url,omitempty"`
	SellerID    string          `json:"seller_id"`
}

// Subtotal returns unit price times quantity for this line
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSubtotal returns the sum of line subtotals. It is always recomputed,
// never stored.
func CartSubtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}
	return total
}
