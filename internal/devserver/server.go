// Package devserver is an in-memory stand-in for the marketplace backend,
// implementing the REST contract the client consumes. It exists so the
// client can be developed and demonstrated without the real backend.
package devserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tanimarket/internal/models"
)

// Server serves the development backend
type Server struct {
	router    *gin.Engine
	state     *State
	jwtSecret string
}

// New creates a development backend with an empty state
func New(jwtSecret string) *Server {
	s := &Server{
		router:    gin.Default(),
		state:     NewState(),
		jwtSecret: jwtSecret,
	}
	s.router.Use(cors.Default())
	s.routes()
	return s
}

// State exposes the backing state for seeding
func (s *Server) State() *State {
	return s.state
}

func (s *Server) routes() {
	s.router.POST("/users/register", s.handleRegister)
	s.router.POST("/users/login", s.handleLogin)

	auth := s.router.Group("/", s.requireAuth)
	{
		auth.GET("/produk", s.handleListProducts)
		auth.GET("/produk/:id", s.handleGetProduct)
		auth.POST("/produk", s.requireRole(models.RolePetani, models.RoleAdmin), s.handleCreateProduct)
		auth.PUT("/produk/:id", s.requireRole(models.RolePetani, models.RoleAdmin), s.handleUpdateProduct)
		auth.DELETE("/produk/:id", s.requireRole(models.RolePetani, models.RoleAdmin), s.handleDeleteProduct)

		auth.POST("/transaksi/checkout", s.requireRole(models.RolePembeli), s.handleCheckout)
		auth.GET("/transaksi", s.handleOrdersByUser)
		auth.GET("/transaksi/petani/:id", s.requireRole(models.RolePetani, models.RoleAdmin), s.handleOrdersByPetani)
		auth.PUT("/transaksi/:id/status", s.handleUpdateOrderStatus)

		auth.GET("/chat/conversation/:userA/:userB", s.handleConversation)
		auth.POST("/chat", s.handleSendMessage)
		auth.PUT("/chat/read", s.handleMarkRead)

		auth.GET("/users", s.requireRole(models.RoleAdmin), s.handleListUsers)
		auth.PUT("/users/:id", s.requireRole(models.RoleAdmin), s.handleUpdateUser)
		auth.DELETE("/users/:id", s.requireRole(models.RoleAdmin), s.handleDeleteUser)
	}
}

// ServeHTTP lets the server be driven directly as an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the server on addr
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
