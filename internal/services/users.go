package services

import (
	"context"
	"fmt"

	"tanimarket/internal/api"
	"tanimarket/internal/models"
)

// UserAPI is the backend surface for identity and account management
type UserAPI interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, req *models.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// SessionSink receives a successful login
type SessionSink interface {
	Login(token string, user *models.User) error
}

// UserService handles registration, login and admin account management
type UserService struct {
	client  UserAPI
	session SessionSink
}

// NewUserService creates a user service
func NewUserService(client UserAPI, session SessionSink) *UserService {
	return &UserService{client: client, session: session}
}

// Register validates and creates a new account
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}
	return s.client.Register(ctx, req)
}

// Login exchanges credentials for a session and stores it
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.session.Login(result.Token, &result.User); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &result.User, nil
}

// All returns every account (admin only)
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	return s.client.ListUsers(ctx)
}

// Update validates and updates an account (admin only)
func (s *UserService) Update(ctx context.Context, id string, req *models.UserUpdateRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}
	return s.client.UpdateUser(ctx, id, req)
}

// Delete removes an account (admin only)
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteUser(ctx, id)
}
