package api

import (
	"context"
	"net/http"

	"tanimarket/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the backend's successful login response
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token and the account identity
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	req := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUsers fetches all accounts (admin only)
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an account (admin only)
func (c *Client) UpdateUser(ctx context.Context, id string, req *models.UserUpdateRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+id, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account (admin only)
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}
