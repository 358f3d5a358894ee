package api

import (
	"context"
	"net/http"

	"tanimarket/internal/models"
)

// ListProducts fetches the full product catalog
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/produk", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/produk/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct lists a new product
func (c *Client) CreateProduct(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/produk", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates an existing product
func (c *Client) UpdateProduct(ctx context.Context, id string, req *models.ProductCreateRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPut, "/produk/"+id, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product listing
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/produk/"+id, nil, nil)
}
