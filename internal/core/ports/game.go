package ports

import (
	"context"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

// GameRepository defines persistence operations for games.
type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) (*domain.Game, error)
	FindByID(ctx context.Context, id string) (*domain.Game, error)
	FindAll(ctx context.Context) ([]*domain.Game, error)
	FindByDeveloper(ctx context.Context, developerID string) ([]*domain.Game, error)
	Update(ctx context.Context, id string, game *domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
	// DeleteByDeveloper removes every game owned by the developer and
	// returns the number removed.
	DeleteByDeveloper(ctx context.Context, developerID string) (int64, error)
}

// CreateGameInput carries a validated game-creation request.
type CreateGameInput struct {
	Title             string
	Genre             string
	Platform          string
	ControllerSupport bool
	Language          string
	PlayerType        string
	DeveloperID       string
	Photo             []byte
	Description       string
}

// UpdateGameInput is a partial update; nil fields are left untouched.
// Supplied enum fields are re-validated case-exactly.
type UpdateGameInput struct {
	Title             *string
	Genre             *string
	Platform          *string
	ControllerSupport *bool
	Language          *string
	PlayerType        *string
	DeveloperID       *string
	Photo             []byte
	Description       *string
}

// GameDetail is a game optionally expanded with its developer.
type GameDetail struct {
	Game      *domain.Game      `json:"game"`
	Developer *domain.Developer `json:"developer,omitempty"`
}

// GameService defines use-case operations for games.
type GameService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateGameInput) (*domain.Game, error)
	Get(ctx context.Context, id string, expand ExpandSet) (*GameDetail, error)
	List(ctx context.Context, expand ExpandSet) ([]*GameDetail, error)
	ListByDeveloper(ctx context.Context, developerID string) ([]*domain.Game, error)
	Update(ctx context.Context, principal domain.Principal, id string, input UpdateGameInput) (*domain.Game, error)
	Delete(ctx context.Context, principal domain.Principal, id string) (*domain.CascadeResult, error)
}
