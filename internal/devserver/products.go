package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tanimarket/internal/models"
)

func (s *Server) handleListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.listProducts())
}

func (s *Server) handleGetProduct(c *gin.Context) {
	product, ok := s.state.productByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var req models.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product := &models.Product{
		ID:        uuid.NewString(),
		Nama:      req.Nama,
		Deskripsi: req.Deskripsi,
		Harga:     req.Harga,
		Stok:      req.Stok,
		Satuan:    req.Satuan,
		ImageURL:  req.ImageURL,
		PetaniID:  currentUser(c).ID,
	}
	s.state.addProduct(product)

	c.JSON(http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(c *gin.Context) {
	var req models.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, ok := s.state.productByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound.Error()})
		return
	}

	// A petani may only touch their own listings; admins may touch any.
	user := currentUser(c)
	if !user.IsAdmin() && product.PetaniID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "bukan produk anda"})
		return
	}

	updated, err := s.state.updateProduct(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	product, ok := s.state.productByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound.Error()})
		return
	}

	user := currentUser(c)
	if !user.IsAdmin() && product.PetaniID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "bukan produk anda"})
		return
	}

	if err := s.state.deleteProduct(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
