package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tanimarket/internal/models"
)

// MockOrderAPI is a mock implementation of OrderAPI
type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderAPI) OrdersByPetani(ctx context.Context, petaniID string) ([]models.Order, error) {
	args := m.Called(ctx, petaniID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderAPI) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestOrderService_TransitionLegalMove(t *testing.T) {
	client := new(MockOrderAPI)
	svc := NewOrderService(client)

	order := &models.Order{ID: "o1", Status: models.OrderMenunggu}
	client.On("UpdateOrderStatus", mock.Anything, "o1", models.OrderDiproses).
		Return(&models.Order{ID: "o1", Status: models.OrderDiproses}, nil)

	updated, err := svc.Transition(context.Background(), order, models.OrderDiproses)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDiproses, updated.Status)
}

func TestOrderService_TransitionIllegalMove(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{name: "menunggu cannot complete", from: models.OrderMenunggu, to: models.OrderSelesai},
		{name: "selesai is terminal", from: models.OrderSelesai, to: models.OrderDibatalkan},
		{name: "dibatalkan is terminal", from: models.OrderDibatalkan, to: models.OrderDiproses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockOrderAPI)
			svc := NewOrderService(client)

			order := &models.Order{ID: "o1", Status: tt.from}
			_, err := svc.Transition(context.Background(), order, tt.to)
			require.Error(t, err)
			client.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_TransitionUnknownStatus(t *testing.T) {
	client := new(MockOrderAPI)
	svc := NewOrderService(client)

	order := &models.Order{ID: "o1", Status: models.OrderMenunggu}
	_, err := svc.Transition(context.Background(), order, "SHIPPED")
	require.Error(t, err)
	client.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_History(t *testing.T) {
	client := new(MockOrderAPI)
	svc := NewOrderService(client)

	client.On("OrdersByUser", mock.Anything, "buyer-1").
		Return([]models.Order{{ID: "o1"}, {ID: "o2"}}, nil)

	orders, err := svc.History(context.Background(), "buyer-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
