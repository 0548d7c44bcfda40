package ports

import (
	"context"
	"time"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

// DeveloperRepository defines persistence operations for developers.
type DeveloperRepository interface {
	Create(ctx context.Context, dev *domain.Developer) (*domain.Developer, error)
	FindByID(ctx context.Context, id string) (*domain.Developer, error)
	FindAll(ctx context.Context) ([]*domain.Developer, error)
	FindByOwner(ctx context.Context, userID string) ([]*domain.Developer, error)
	Update(ctx context.Context, id string, dev *domain.Developer) (*domain.Developer, error)
	Delete(ctx context.Context, id string) error
}

// CreateDeveloperInput carries a validated developer-creation request.
type CreateDeveloperInput struct {
	Name         string
	Founder      string
	Founded      time.Time
	Headquarters string
	OwnerUserID  string
	Photo        []byte
	Description  string
}

// UpdateDeveloperInput is a partial update; nil fields are left untouched.
// Reassigning OwnerUserID is an admin-only sub-operation.
type UpdateDeveloperInput struct {
	Name         *string
	Founder      *string
	Founded      *time.Time
	Headquarters *string
	OwnerUserID  *string
	Photo        []byte
	Description  *string
}

// DeveloperDetail is a developer optionally expanded with its owning user.
type DeveloperDetail struct {
	Developer *domain.Developer `json:"developer"`
	Owner     *domain.User      `json:"owner,omitempty"`
}

// DeveloperService defines use-case operations for developers.
type DeveloperService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateDeveloperInput) (*domain.Developer, error)
	Get(ctx context.Context, id string, expand ExpandSet) (*DeveloperDetail, error)
	List(ctx context.Context, expand ExpandSet) ([]*DeveloperDetail, error)
	ListByOwner(ctx context.Context, userID string) ([]*domain.Developer, error)
	Update(ctx context.Context, principal domain.Principal, id string, input UpdateDeveloperInput) (*domain.Developer, error)
	Delete(ctx context.Context, principal domain.Principal, id string) (*domain.CascadeResult, error)
}
