package devserver

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tanimarket/internal/models"
	"tanimarket/internal/utils"
)

// Seed fills the state with demo accounts and a small catalog so the
// client has something to work with out of the box. All demo accounts
// use the password "password123".
func (s *Server) Seed() error {
	hash, err := utils.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	accounts := []*account{
		{
			User: models.User{
				ID:     "seed-admin",
				Nama:   "Admin TaniMarket",
				Email:  "admin@tanimarket.local",
				Role:   models.RoleAdmin,
				Alamat: "Kantor Pusat TaniMarket",
				NoHP:   "081200000001",
			},
			PasswordHash: hash,
		},
		{
			User: models.User{
				ID:     "seed-petani",
				Nama:   "Pak Budi",
				Email:  "budi@tanimarket.local",
				Role:   models.RolePetani,
				Alamat: "Desa Sukamaju, Bandung",
				NoHP:   "081200000002",
			},
			PasswordHash: hash,
		},
		{
			User: models.User{
				ID:     "seed-pembeli",
				Nama:   "Ibu Sari",
				Email:  "sari@tanimarket.local",
				Role:   models.RolePembeli,
				Alamat: "Jl. Melati No. 5, Jakarta",
				NoHP:   "081200000003",
			},
			PasswordHash: hash,
		},
	}
	for _, acc := range accounts {
		if err := s.state.addUser(acc); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", acc.Email, err)
		}
	}

	products := []*models.Product{
		{
			ID:        "seed-produk-beras",
			Nama:      "Beras Organik",
			Deskripsi: "Beras organik hasil panen terbaru",
			Harga:     decimal.NewFromInt(15000),
			Stok:      100,
			Satuan:    "kg",
			PetaniID:  "seed-petani",
		},
		{
			ID:        "seed-produk-cabai",
			Nama:      "Cabai Merah",
			Deskripsi: "Cabai merah segar langsung dari kebun",
			Harga:     decimal.NewFromInt(45000),
			Stok:      25,
			Satuan:    "kg",
			PetaniID:  "seed-petani",
		},
		{
			ID:        "seed-produk-tomat",
			Nama:      "Tomat Sayur",
			Deskripsi: "Tomat sayur untuk masakan sehari-hari",
			Harga:     decimal.NewFromInt(12000),
			Stok:      60,
			Satuan:    "kg",
			PetaniID:  "seed-petani",
		},
	}
	for _, p := range products {
		s.state.addProduct(p)
	}

	return nil
}
