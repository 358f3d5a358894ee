package services

import (
	"context"
	"fmt"

	"tanimarket/internal/models"
)

// OrderAPI is the backend surface for order tracking
type OrderAPI interface {
	OrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	OrdersByPetani(ctx context.Context, petaniID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

// OrderService handles order history and status transitions. The status
// lifecycle is server-authoritative; the client only requests explicit
// transitions it knows to be legal.
type OrderService struct {
	client OrderAPI
}

// NewOrderService creates an order service
func NewOrderService(client OrderAPI) *OrderService {
	return &OrderService{client: client}
}

// History returns a buyer's orders
func (s *OrderService) History(ctx context.Context, userID string) ([]models.Order, error) {
	return s.client.OrdersByUser(ctx, userID)
}

// Incoming returns the orders containing a petani's products
func (s *OrderService) Incoming(ctx context.Context, petaniID string) ([]models.Order, error) {
	return s.client.OrdersByPetani(ctx, petaniID)
}

// Transition moves an order to the given status after checking the move
// is legal for the order's current state
func (s *OrderService) Transition(ctx context.Context, order *models.Order, next models.OrderStatus) (*models.Order, error) {
	if err := models.ValidateStatus(next); err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(next) {
		return nil, fmt.Errorf("order %s cannot move from %s to %s", order.ID, order.Status, next)
	}

	return s.client.UpdateOrderStatus(ctx, order.ID, next)
}
