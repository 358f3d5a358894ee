package models

import (
	"errors"
	"regexp"
	"strings"
)

// Role represents the role of a user in the marketplace
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RolePetani  Role = "PETANI"
	RolePembeli Role = "PEMBELI"
)

// User represents a marketplace account
type User struct {
	ID     string `json:"id"`
	Nama   string `json:"nama"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Alamat string `json:"alamat"`
	NoHP   string `json:"no_hp"`
}

// RegisterRequest represents the data needed to create a new account
type RegisterRequest struct {
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Alamat   string `json:"alamat"`
	NoHP     string `json:"no_hp"`
}

// UserUpdateRequest represents the fields an admin can change on an account
type UserUpdateRequest struct {
	Nama   string `json:"nama"`
	Role   Role   `json:"role"`
	Alamat string `json:"alamat"`
	NoHP   string `json:"no_hp"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates registration data
func (req *RegisterRequest) Validate() error {
	if strings.TrimSpace(req.Nama) == "" {
		return errors.New("nama is required")
	}

	if err := validateEmail(req.Email); err != nil {
		return err
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	return validateRole(req.Role)
}

// Validate validates account update data
func (req *UserUpdateRequest) Validate() error {
	if strings.TrimSpace(req.Nama) == "" {
		return errors.New("nama is required")
	}

	return validateRole(req.Role)
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if len(email) > 255 {
		return errors.New("email must be less than 255 characters")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	if len(password) > 128 {
		return errors.New("password must be less than 128 characters")
	}

	return nil
}

func validateRole(role Role) error {
	switch role {
	case RoleAdmin, RolePetani, RolePembeli:
		return nil
	default:
		return errors.New("invalid user role")
	}
}

// DisplayName returns a human-readable role name
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RolePetani:
		return "Petani"
	case RolePembeli:
		return "Pembeli"
	default:
		return string(r)
	}
}

// IsAdmin returns true if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPetani returns true if the user is a producer
func (u *User) IsPetani() bool {
	return u.Role == RolePetani
}

// IsPembeli returns true if the user is a buyer
func (u *User) IsPembeli() bool {
	return u.Role == RolePembeli
}

// CanManageProducts returns true if the user can create and edit products
func (u *User) CanManageProducts() bool {
	return u.Role == RolePetani || u.Role == RoleAdmin
}

// CanManageUsers returns true if the user can manage other accounts
func (u *User) CanManageUsers() bool {
	return u.Role == RoleAdmin
}
