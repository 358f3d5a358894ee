package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the server-authoritative status of a transaksi
type OrderStatus string

const (
	OrderMenunggu   OrderStatus = "MENUNGGU"
	OrderDiproses   OrderStatus = "DIPROSES"
	OrderSelesai    OrderStatus = "SELESAI"
	OrderDibatalkan OrderStatus = "DIBATALKAN"
)

// ShippingOption represents a shipping tier with a fixed fee
type ShippingOption string

const (
	ShippingRegular ShippingOption = "REGULAR"
	ShippingExpress ShippingOption = "EXPRESS"
	ShippingSameDay ShippingOption = "SAME_DAY"
	ShippingPickup  ShippingOption = "PICKUP"
)

// PaymentMethod represents how the buyer intends to pay
type PaymentMethod string

const (
	PaymentBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentEWallet        PaymentMethod = "E_WALLET"
	PaymentCashOnDelivery PaymentMethod = "COD"
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
)

// Fee returns the flat ongkos kirim for the shipping option
func (s ShippingOption) Fee() decimal.Decimal {
	switch s {
	case ShippingRegular:
		return decimal.NewFromInt(15000)
	case ShippingExpress:
		return decimal.NewFromInt(30000)
	case ShippingSameDay:
		return decimal.NewFromInt(50000)
	default:
		return decimal.Zero
	}
}

// Valid returns true for a known shipping option
func (s ShippingOption) Valid() bool {
	switch s {
	case ShippingRegular, ShippingExpress, ShippingSameDay, ShippingPickup:
		return true
	default:
		return false
	}
}

// Valid returns true for a known payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentBankTransfer, PaymentEWallet, PaymentCashOnDelivery, PaymentCreditCard:
		return true
	default:
		return false
	}
}

// Order represents a transaksi as the backend reports it
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Tanggal        time.Time       `json:"tanggal"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	Alamat         string          `json:"alamat"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	ShippingOption ShippingOption  `json:"shipping_option"`
	OngkosKirim    decimal.Decimal `json:"ongkos_kirim"`
	Tendered       decimal.Decimal `json:"tendered"`
	Kembalian      decimal.Decimal `json:"kembalian"`
	Details        []OrderDetail   `json:"details,omitempty"`
}

// OrderDetail represents one line of a transaksi with the unit price frozen
// at checkout time
type OrderDetail struct {
	ProdukID    string          `json:"produk_id"`
	Jumlah      int             `json:"jumlah"`
	HargaSatuan decimal.Decimal `json:"harga_satuan"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ValidateStatus validates an order status value
func ValidateStatus(status OrderStatus) error {
	switch status {
	case OrderMenunggu, OrderDiproses, OrderSelesai, OrderDibatalkan:
		return nil
	default:
		return errors.New("invalid order status")
	}
}

// IsTerminal returns true once no further transition is possible
func (o *Order) IsTerminal() bool {
	return o.Status == OrderSelesai || o.Status == OrderDibatalkan
}

// CanBeProcessed returns true if the order can move to DIPROSES
func (o *Order) CanBeProcessed() bool {
	return o.Status == OrderMenunggu
}

// CanBeCompleted returns true if the order can move to SELESAI
func (o *Order) CanBeCompleted() bool {
	return o.Status == OrderDiproses
}

// CanBeCancelled returns true if the order can move to DIBATALKAN
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderMenunggu || o.Status == OrderDiproses
}

// CanTransitionTo reports whether the status change is allowed by the
// order lifecycle
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch next {
	case OrderDiproses:
		return o.CanBeProcessed()
	case OrderSelesai:
		return o.CanBeCompleted()
	case OrderDibatalkan:
		return o.CanBeCancelled()
	default:
		return false
	}
}

// StatusDisplayName returns a human-readable status name
func (o *Order) StatusDisplayName() string {
	switch o.Status {
	case OrderMenunggu:
		return "Menunggu Konfirmasi"
	case OrderDiproses:
		return "Sedang Diproses"
	case OrderSelesai:
		return "Selesai"
	case OrderDibatalkan:
		return "Dibatalkan"
	default:
		return string(o.Status)
	}
}
