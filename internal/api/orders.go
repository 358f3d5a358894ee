package api

import (
	"context"
	"net/http"
	"net/url"

	"tanimarket/internal/models"
)

// CheckoutRequest is the composite order-creation payload: one transaksi
// header plus one detail line per cart item
type CheckoutRequest struct {
	Transaksi   models.Order         `json:"transaksi"`
	DetailItems []models.OrderDetail `json:"detail_items"`
}

// Checkout submits the composite order as a single atomic call
func (c *Client) Checkout(ctx context.Context, req *CheckoutRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/transaksi/checkout", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrdersByUser fetches a buyer's order history
func (c *Client) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	path := "/transaksi?user_id=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrdersByPetani fetches orders containing a producer's products
func (c *Client) OrdersByPetani(ctx context.Context, petaniID string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/transaksi/petani/"+petaniID, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderStatus transitions an order to the given status
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	req := statusUpdateRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, "/transaksi/"+orderID+"/status", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
