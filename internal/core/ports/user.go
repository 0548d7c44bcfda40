package ports

import (
	"context"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// SetRefreshToken overwrites the stored refresh token. An empty token
	// clears it (logout).
	SetRefreshToken(ctx context.Context, id, token string) error
	FindByRefreshToken(ctx context.Context, token string) (*domain.User, error)
}

// CreateUserInput carries a validated signup request.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Photo    []byte
}

// UpdateUserInput is a full-field user update. Role changes are admin-only.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Photo    []byte
}

// UserService defines use-case operations for users.
type UserService interface {
	Register(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, principal domain.Principal, id string, input UpdateUserInput) (*domain.User, error)
	// Delete removes the user and cascades to owned developers (with their
	// games and comments) and authored comments.
	Delete(ctx context.Context, principal domain.Principal, id string) (*domain.CascadeResult, error)
}
