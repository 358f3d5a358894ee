package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a product listed by a petani
type Product struct {
	ID        string          `json:"id"`
	Nama      string          `json:"nama"`
	Deskripsi string          `json:"deskripsi"`
	Harga     decimal.Decimal `json:"harga"`
	Stok      int             `json:"stok"`
	Satuan    string          `json:"satuan"`
	ImageURL  string          `json:"image_url,omitempty"`
	PetaniID  string          `json:"petani_id"`
}

// ProductCreateRequest represents the data needed to list a new product
type ProductCreateRequest struct {
	Nama      string          `json:"nama"`
	Deskripsi string          `json:"deskripsi"`
	Harga     decimal.Decimal `json:"harga"`
	Stok      int             `json:"stok"`
	Satuan    string          `json:"satuan"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// Validate validates product listing data
func (req *ProductCreateRequest) Validate() error {
	if strings.TrimSpace(req.Nama) == "" {
		return errors.New("nama produk is required")
	}

	if req.Harga.IsNegative() {
		return errors.New("harga cannot be negative")
	}

	if req.Stok < 0 {
		return errors.New("stok cannot be negative")
	}

	if strings.TrimSpace(req.Satuan) == "" {
		return errors.New("satuan is required")
	}

	return nil
}

// InStock returns true if any stock remains
func (p *Product) InStock() bool {
	return p.Stok > 0
}
