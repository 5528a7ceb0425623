package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

type User struct {
	ID        string    `json:"id"` // Auth provider UUID
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type AuthUsecase interface {
	EnsureUserExists(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
