package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"tanimarket/internal/models"
)

// CartStorage persists cart lines durably between runs
type CartStorage interface {
	LoadCart() ([]models.CartItem, error)
	SaveCart([]models.CartItem) error
}

// CartService maintains the buyer's intended purchases. Every mutation is
// persisted before it returns, so any later reader of the storage sees it.
type CartService struct {
	storage CartStorage
	items   []models.CartItem
}

// NewCartService creates a cart service, restoring any persisted lines
func NewCartService(storage CartStorage) (*CartService, error) {
	items, err := storage.LoadCart()
	if err != nil {
		return nil, fmt.Errorf("failed to restore cart: %w", err)
	}
	return &CartService{storage: storage, items: items}, nil
}

// Add puts quantity units of product into the cart. Adding a product that
// is already present increments its line instead of duplicating it. Stock
// is not checked here; the backend enforces it at order time.
func (s *CartService) Add(product *models.Product, quantity int) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			return s.persist()
		}
	}

	s.items = append(s.items, models.CartItem{
		ProductID:   product.ID,
		ProductName: product.Nama,
		UnitPrice:   product.Harga,
		Quantity:    quantity,
		Satuan:      product.Satuan,
		ImageURL:    product.ImageURL,
		SellerID:    product.PetaniID,
	})
	return s.persist()
}

// SetQuantity sets the quantity of the line at index, clamping to a
// minimum of 1. The line is never removed here; use Remove for that.
func (s *CartService) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(s.items) {
		return errors.New("cart line does not exist")
	}

	if quantity < 1 {
		quantity = 1
	}
	s.items[index].Quantity = quantity
	return s.persist()
}

// Remove deletes the line at index unconditionally
func (s *CartService) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return errors.New("cart line does not exist")
	}

	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.persist()
}

// Clear empties the cart; used after a successful checkout
func (s *CartService) Clear() error {
	s.items = nil
	return s.persist()
}

// Items returns a copy of the cart lines in insertion order
func (s *CartService) Items() []models.CartItem {
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Subtotal recomputes the cart subtotal; it is never cached
func (s *CartService) Subtotal() decimal.Decimal {
	return models.CartSubtotal(s.items)
}

// Len returns the number of cart lines
func (s *CartService) Len() int {
	return len(s.items)
}

func (s *CartService) persist() error {
	if err := s.storage.SaveCart(s.items); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
