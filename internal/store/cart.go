package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tanimarket/internal/models"
)

// LoadCart reads the persisted cart lines in insertion order
func (s *Store) LoadCart() ([]models.CartItem, error) {
	rows, err := s.db.Query(
		"SELECT product_id, product_name, unit_price, quantity, satuan, image_url, seller_id FROM cart_items ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		var price string
		if err := rows.Scan(&item.ProductID, &item.ProductName, &price, &item.Quantity, &item.Satuan, &item.ImageURL, &item.SellerID); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored price %q: %w", price, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart rows: %w", err)
	}

	return items, nil
}

// SaveCart replaces the persisted cart with the given lines, preserving
// their order. The write is committed before SaveCart returns.
func (s *Store) SaveCart(items []models.CartItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cart write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cart_items"); err != nil {
		return fmt.Errorf("failed to clear cart table: %w", err)
	}

	for i := range items {
		item := &items[i]
		_, err := tx.Exec(
			"INSERT INTO cart_items (product_id, product_name, unit_price, quantity, satuan, image_url, seller_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			item.ProductID, item.ProductName, item.UnitPrice.String(), item.Quantity, item.Satuan, item.ImageURL, item.SellerID,
		)
		if err != nil {
			return fmt.Errorf("failed to persist cart item %s: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart write: %w", err)
	}

	return nil
}
