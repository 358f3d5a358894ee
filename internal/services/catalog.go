package services

import (
	"context"
	"fmt"

	"tanimarket/internal/models"
)

// CatalogAPI is the backend surface for product browsing and management
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *models.ProductCreateRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CatalogService handles product browsing for buyers and product
// management for petani
type CatalogService struct {
	client CatalogAPI
}

// NewCatalogService creates a catalog service
func NewCatalogService(client CatalogAPI) *CatalogService {
	return &CatalogService{client: client}
}

// Browse returns the full catalog
func (s *CatalogService) Browse(ctx context.Context) ([]models.Product, error) {
	return s.client.ListProducts(ctx)
}

// Get returns one product
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.client.GetProduct(ctx, id)
}

// MyProducts returns the products listed by the given petani
func (s *CatalogService) MyProducts(ctx context.Context, petaniID string) ([]models.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	var mine []models.Product
	for i := range products {
		if products[i].PetaniID == petaniID {
			mine = append(mine, products[i])
		}
	}
	return mine, nil
}

// List validates and creates a new product listing
func (s *CatalogService) List(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	return s.client.CreateProduct(ctx, req)
}

// Update validates and updates an existing listing
func (s *CatalogService) Update(ctx context.Context, id string, req *models.ProductCreateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	return s.client.UpdateProduct(ctx, id, req)
}

// Delete removes a listing
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteProduct(ctx, id)
}
