package main

import "context"

// Predefined user roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered customer or administrator.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Address      string `json:"address,omitempty"`
	Role         string `json:"role"`
	Enabled      bool   `json:"enabled"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// IsAdmin tells if the user holds the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserStorage defines possible operations on user entity.
type UserStorage interface {
	Add(ctx context.Context, id string, user User) error
	GetOne(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id string, user User) (User, error)
	GetAll(ctx context.Context) ([]User, error)
}
