package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tanimarket/internal/api"
	"tanimarket/internal/models"
)

// MockCheckoutAPI is a mock implementation of CheckoutAPI
type MockCheckoutAPI struct {
	mock.Mock
}

func (m *MockCheckoutAPI) Checkout(ctx context.Context, req *api.CheckoutRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

var testBuyer = &models.User{
	ID:     "buyer-1",
	Nama:   "Budi",
	Role:   models.RolePembeli,
	Alamat: "Jl. Melati 1",
}

func newCheckoutFixture(t *testing.T) (*CheckoutService, *CartService, *MockCheckoutAPI) {
	t.Helper()
	cart, _ := newTestCart(t)
	client := new(MockCheckoutAPI)
	svc := NewCheckoutService(cart, client)
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc, cart, client
}

func TestCheckoutService_Total(t *testing.T) {
	svc, cart, _ := newCheckoutFixture(t)
	require.NoError(t, cart.Add(testProduct("A", 10000), 2))
	require.NoError(t, cart.Add(testProduct("B", 7500), 1))

	tests := []struct {
		name     string
		shipping models.ShippingOption
		want     int64
	}{
		{name: "no option selected yet", shipping: "", want: 27500},
		{name: "regular", shipping: models.ShippingRegular, want: 42500},
		{name: "express", shipping: models.ShippingExpress, want: 57500},
		{name: "pickup", shipping: models.ShippingPickup, want: 27500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.Total(tt.shipping); !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("CheckoutService.Total() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckoutService_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		sub     PaymentSubmission
		wantErr string
	}{
		{
			name:    "payment method first",
			sub:     PaymentSubmission{},
			wantErr: "payment method must be selected",
		},
		{
			name:    "then shipping option",
			sub:     PaymentSubmission{Method: models.PaymentEWallet},
			wantErr: "shipping option must be selected",
		},
		{
			name: "then positive tender",
			sub: PaymentSubmission{
				Method:   models.PaymentEWallet,
				Shipping: models.ShippingRegular,
			},
			wantErr: "tendered amount must be greater than zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cart, client := newCheckoutFixture(t)
			require.NoError(t, cart.Add(testProduct("A", 10000), 1))

			_, err := svc.Submit(context.Background(), testBuyer, tt.sub)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			client.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	svc, _, client := newCheckoutFixture(t)

	_, err := svc.Submit(context.Background(), testBuyer, PaymentSubmission{
		Method:   models.PaymentEWallet,
		Shipping: models.ShippingRegular,
		Tendered: decimal.NewFromInt(100000),
	})
	require.Error(t, err)
	assert.Equal(t, "cart is empty", err.Error())
	client.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
}

func TestCheckoutService_ShortfallNeverReachesNetwork(t *testing.T) {
	svc, cart, client := newCheckoutFixture(t)
	require.NoError(t, cart.Add(testProduct("A", 10000), 2))

	// Total is 20000 + 15000 = 35000; tender 30000 is short by 5000.
	_, err := svc.Submit(context.Background(), testBuyer, PaymentSubmission{
		Method:   models.PaymentBankTransfer,
		Shipping: models.ShippingRegular,
		Tendered: decimal.NewFromInt(30000),
	})

	var shortfall *ShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.True(t, shortfall.Shortfall.Equal(decimal.NewFromInt(5000)),
		"reported shortfall = %v, want 5000", shortfall.Shortfall)
	client.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
	assert.Equal(t, 1, cart.Len(), "validation failure leaves the cart alone")
}

func TestCheckoutService_SuccessfulSubmission(t *testing.T) {
	svc, cart, client := newCheckoutFixture(t)
	require.NoError(t, cart.Add(testProduct("A", 10000), 2))

	var got *api.CheckoutRequest
	client.On("Checkout", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(*api.CheckoutRequest) }).
		Return(&models.Order{ID: "order-1", Status: models.OrderMenunggu}, nil)

	result, err := svc.Submit(context.Background(), testBuyer, PaymentSubmission{
		Method:   models.PaymentBankTransfer,
		Shipping: models.ShippingRegular,
		Tendered: decimal.NewFromInt(40000),
	})
	require.NoError(t, err)

	// The worked example: subtotal 20000, fee 15000, tender 40000.
	assert.True(t, result.Change.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "order-1", result.Order.ID)
	assert.Equal(t, 0, cart.Len(), "cart cleared after success")

	require.NotNil(t, got)
	assert.Equal(t, "buyer-1", got.Transaksi.UserID)
	assert.Equal(t, "Jl. Melati 1", got.Transaksi.Alamat)
	assert.Equal(t, models.OrderMenunggu, got.Transaksi.Status)
	assert.True(t, got.Transaksi.Total.Equal(decimal.NewFromInt(35000)))
	assert.True(t, got.Transaksi.OngkosKirim.Equal(decimal.NewFromInt(15000)))
	assert.True(t, got.Transaksi.Tendered.Equal(decimal.NewFromInt(40000)))
	assert.True(t, got.Transaksi.Kembalian.Equal(decimal.NewFromInt(5000)))

	require.Len(t, got.DetailItems, 1)
	detail := got.DetailItems[0]
	assert.Equal(t, "A", detail.ProdukID)
	assert.Equal(t, 2, detail.Jumlah)
	assert.True(t, detail.HargaSatuan.Equal(decimal.NewFromInt(10000)))
	assert.True(t, detail.Subtotal.Equal(decimal.NewFromInt(20000)))
}

func TestCheckoutService_ExactTenderZeroChange(t *testing.T) {
	svc, cart, client := newCheckoutFixture(t)
	require.NoError(t, cart.Add(testProduct("A", 10000), 2))

	client.On("Checkout", mock.Anything, mock.Anything).
		Return(&models.Order{ID: "order-1"}, nil)

	result, err := svc.Submit(context.Background(), testBuyer, PaymentSubmission{
		Method:   models.PaymentCashOnDelivery,
		Shipping: models.ShippingPickup,
		Tendered: decimal.NewFromInt(20000),
	})
	require.NoError(t, err)
	assert.True(t, result.Change.IsZero())
	assert.Equal(t, 0, cart.Len())
}

func TestCheckoutService_BackendFailureLeavesCartUntouched(t *testing.T) {
	svc, cart, client := newCheckoutFixture(t)
	require.NoError(t, cart.Add(testProduct("A", 10000), 2))
	require.NoError(t, cart.Add(testProduct("B", 7500), 3))
	before := cart.Items()

	client.On("Checkout", mock.Anything, mock.Anything).
		Return(nil, errors.New("stok tidak mencukupi"))

	_, err := svc.Submit(context.Background(), testBuyer, PaymentSubmission{
		Method:   models.PaymentEWallet,
		Shipping: models.ShippingSameDay,
		Tendered: decimal.NewFromInt(200000),
	})
	require.Error(t, err)
	assert.Equal(t, "stok tidak mencukupi", err.Error(), "backend message surfaced verbatim")

	after := cart.Items()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ProductID, after[i].ProductID)
		assert.Equal(t, before[i].Quantity, after[i].Quantity)
		assert.True(t, before[i].UnitPrice.Equal(after[i].UnitPrice))
	}
}
