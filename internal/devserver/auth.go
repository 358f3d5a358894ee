package devserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tanimarket/internal/models"
	"tanimarket/internal/utils"
)

type sessionClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(user *models.User) (string, error) {
	claims := sessionClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *Server) parseToken(raw string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// requireAuth rejects requests without a valid bearer token and loads the
// account into the gin context
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token diperlukan"})
		return
	}

	claims, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token tidak valid"})
		return
	}

	acc, ok := s.state.userByID(claims.Subject)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "akun tidak ditemukan"})
		return
	}

	c.Set("user", &acc.User)
	c.Next()
}

// requireRole allows only the given roles past
func (s *Server) requireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "akses ditolak"})
	}
}

func currentUser(c *gin.Context) *models.User {
	value, _ := c.Get("user")
	user, _ := value.(*models.User)
	return user
}

func (s *Server) handleRegister(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "gagal memproses password"})
		return
	}

	acc := &account{
		User: models.User{
			ID:     uuid.NewString(),
			Nama:   req.Nama,
			Email:  req.Email,
			Role:   req.Role,
			Alamat: req.Alamat,
			NoHP:   req.NoHP,
		},
		PasswordHash: hash,
	}

	if err := s.state.addUser(acc); err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, acc.User)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	acc, ok := s.state.userByEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email atau password salah"})
		return
	}

	match, err := utils.VerifyPassword(req.Password, acc.PasswordHash)
	if err != nil || !match {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email atau password salah"})
		return
	}

	token, err := s.issueToken(&acc.User)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "gagal membuat token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": acc.User})
}

func (s *Server) handleListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.listUsers())
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := s.state.updateUser(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	if err := s.state.deleteUser(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
