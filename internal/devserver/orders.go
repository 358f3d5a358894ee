package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tanimarket/internal/models"
)

type checkoutRequest struct {
	Transaksi   models.Order         `json:"transaksi"`
	DetailItems []models.OrderDetail `json:"detail_items"`
}

func (s *Server) handleCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	if len(req.DetailItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "transaksi tanpa item"})
		return
	}

	order := req.Transaksi
	order.ID = uuid.NewString()
	order.UserID = currentUser(c).ID
	order.Status = models.OrderMenunggu
	order.Details = req.DetailItems
	if order.Tanggal.IsZero() {
		order.Tanggal = time.Now()
	}

	if err := s.state.placeOrder(&order); err != nil {
		status := http.StatusConflict
		if errors.Is(err, errProductNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) handleOrdersByUser(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = currentUser(c).ID
	}
	c.JSON(http.StatusOK, s.state.ordersByUser(userID))
}

func (s *Server) handleOrdersByPetani(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.ordersByPetani(c.Param("id")))
}

func (s *Server) handleUpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	if err := models.ValidateStatus(req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := s.state.updateOrderStatus(c.Param("id"), req.Status)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errOrderNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}
