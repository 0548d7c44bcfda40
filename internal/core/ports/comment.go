package ports

import (
	"context"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	FindAll(ctx context.Context) ([]*domain.Comment, error)
	FindByGame(ctx context.Context, gameID string) ([]*domain.Comment, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Comment, error)
	Update(ctx context.Context, id string, comment *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByGame(ctx context.Context, gameID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// CreateCommentInput carries a comment-creation request. The author is the
// acting principal, never a caller-supplied id.
type CreateCommentInput struct {
	Title  string
	Body   string
	GameID string
}

// UpdateCommentInput is a partial update restricted to title and body.
type UpdateCommentInput struct {
	Title *string
	Body  *string
}

// CommentDetail is a comment optionally expanded with its game and author.
type CommentDetail struct {
	Comment *domain.Comment `json:"comment"`
	Game    *domain.Game    `json:"game,omitempty"`
	Author  *domain.User    `json:"author,omitempty"`
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateCommentInput) (*domain.Comment, error)
	Get(ctx context.Context, id string, expand ExpandSet) (*CommentDetail, error)
	List(ctx context.Context, expand ExpandSet) ([]*CommentDetail, error)
	ListByGame(ctx context.Context, gameID string) ([]*domain.Comment, error)
	// ListByDeveloper returns the comments across every game owned by the
	// developer.
	ListByDeveloper(ctx context.Context, developerID string) ([]*domain.Comment, error)
	// GetNested resolves a comment through the full ownership chain,
	// failing with NotFound when any link is broken.
	GetNested(ctx context.Context, developerID, gameID, commentID string) (*domain.Comment, error)
	Update(ctx context.Context, principal domain.Principal, id string, input UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
}
