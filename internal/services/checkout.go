package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tanimarket/internal/api"
	"tanimarket/internal/models"
)

// CheckoutAPI is the backend surface the reconciler needs
type CheckoutAPI interface {
	Checkout(ctx context.Context, req *api.CheckoutRequest) (*models.Order, error)
}

// CheckoutCart is the cart surface the reconciler needs
type CheckoutCart interface {
	Items() []models.CartItem
	Subtotal() decimal.Decimal
	Clear() error
}

// PaymentSubmission is the buyer's proposed payment for one checkout
// attempt
type PaymentSubmission struct {
	Method   models.PaymentMethod
	Shipping models.ShippingOption
	Tendered decimal.Decimal
}

// CheckoutResult reports a successful order submission
type CheckoutResult struct {
	Order  *models.Order
	Change decimal.Decimal
}

// ShortfallError reports a tendered amount below the total
type ShortfallError struct {
	Shortfall decimal.Decimal
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("insufficient payment: short by %s", e.Shortfall.String())
}

// CheckoutService turns the cart plus a payment submission into one
// backend order-creation call. Validation failures never reach the
// network; network failures never mutate the cart.
type CheckoutService struct {
	cart   CheckoutCart
	client CheckoutAPI
	now    func() time.Time
}

// NewCheckoutService creates a checkout reconciler over the given cart
func NewCheckoutService(cart CheckoutCart, client CheckoutAPI) *CheckoutService {
	return &CheckoutService{cart: cart, client: client, now: time.Now}
}

// Total returns subtotal plus the fee of the selected shipping option
// (zero while none is selected)
func (s *CheckoutService) Total(shipping models.ShippingOption) decimal.Decimal {
	return s.cart.Subtotal().Add(shipping.Fee())
}

// Validate checks a payment submission against the current cart, failing
// fast on the first violated rule
func (s *CheckoutService) Validate(sub PaymentSubmission) error {
	if len(s.cart.Items()) == 0 {
		return errors.New("cart is empty")
	}

	if !sub.Method.Valid() {
		return errors.New("payment method must be selected")
	}

	if !sub.Shipping.Valid() {
		return errors.New("shipping option must be selected")
	}

	if !sub.Tendered.IsPositive() {
		return errors.New("tendered amount must be greater than zero")
	}

	total := s.Total(sub.Shipping)
	if sub.Tendered.LessThan(total) {
		return &ShortfallError{Shortfall: total.Sub(sub.Tendered)}
	}

	return nil
}

// Submit validates the payment and, on success, submits the composite
// order as one atomic call and clears the cart. A failed submission
// leaves the cart exactly as it was so the buyer may retry.
func (s *CheckoutService) Submit(ctx context.Context, buyer *models.User, sub PaymentSubmission) (*CheckoutResult, error) {
	if err := s.Validate(sub); err != nil {
		return nil, err
	}

	subtotal := s.cart.Subtotal()
	fee := sub.Shipping.Fee()
	total := subtotal.Add(fee)
	change := sub.Tendered.Sub(total)

	items := s.cart.Items()
	details := make([]models.OrderDetail, len(items))
	for i := range items {
		details[i] = models.OrderDetail{
			ProdukID:    items[i].ProductID,
			Jumlah:      items[i].Quantity,
			HargaSatuan: items[i].UnitPrice,
			Subtotal:    items[i].Subtotal(),
		}
	}

	req := &api.CheckoutRequest{
		Transaksi: models.Order{
			UserID:         buyer.ID,
			Tanggal:        s.now(),
			Total:          total,
			Status:         models.OrderMenunggu,
			Alamat:         buyer.Alamat,
			PaymentMethod:  sub.Method,
			ShippingOption: sub.Shipping,
			OngkosKirim:    fee,
			Tendered:       sub.Tendered,
			Kembalian:      change,
		},
		DetailItems: details,
	}

	order, err := s.client.Checkout(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(); err != nil {
		return nil, fmt.Errorf("order submitted but failed to clear cart: %w", err)
	}

	return &CheckoutResult{Order: order, Change: change}, nil
}
