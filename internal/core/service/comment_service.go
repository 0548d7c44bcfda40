package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// CommentService implements comment authoring and moderation.
type CommentService struct {
	repo  ports.CommentRepository
	games ports.GameRepository
	users ports.UserRepository
	gate  *Gate
	log   zerolog.Logger
}

func NewCommentService(
	repo ports.CommentRepository,
	games ports.GameRepository,
	users ports.UserRepository,
	gate *Gate,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{
		repo:  repo,
		games: games,
		users: users,
		gate:  gate,
		log:   log,
	}
}

// Create authors a comment as the principal. Game and author must exist at
// creation time; they are never re-validated afterwards.
func (s *CommentService) Create(ctx context.Context, p domain.Principal, input ports.CreateCommentInput) (*domain.Comment, error) {
	if err := s.gate.AuthorizeCreate(ctx, p, domain.EntityComment, ""); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Body == "" {
		return nil, domain.NewValidationError("body", "requires title and body")
	}

	if _, err := s.users.FindByID(ctx, p.UserID); err != nil {
		return nil, err
	}
	if _, err := s.games.FindByID(ctx, input.GameID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Title:     input.Title,
		Body:      input.Body,
		GameID:    input.GameID,
		UserID:    p.UserID,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, comment)
}

func (s *CommentService) Get(ctx context.Context, id string, expand ports.ExpandSet) (*ports.CommentDetail, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &ports.CommentDetail{Comment: comment}
	s.expandOne(ctx, detail, expand)
	return detail, nil
}

func (s *CommentService) List(ctx context.Context, expand ports.ExpandSet) ([]*ports.CommentDetail, error) {
	comments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]*ports.CommentDetail, 0, len(comments))
	for _, comment := range comments {
		detail := &ports.CommentDetail{Comment: comment}
		s.expandOne(ctx, detail, expand)
		details = append(details, detail)
	}
	return details, nil
}

// expandOne resolves requested relations. Stale references (a deleted game
// or author) are tolerated on reads, mirroring creation-time-only checks.
func (s *CommentService) expandOne(ctx context.Context, detail *ports.CommentDetail, expand ports.ExpandSet) {
	if expand.Has(ports.ExpandGame) {
		if game, err := s.games.FindByID(ctx, detail.Comment.GameID); err == nil {
			detail.Game = game
		}
	}
	if expand.Has(ports.ExpandUser) {
		if author, err := s.users.FindByID(ctx, detail.Comment.UserID); err == nil {
			detail.Author = author
		}
	}
}

func (s *CommentService) ListByGame(ctx context.Context, gameID string) ([]*domain.Comment, error) {
	return s.repo.FindByGame(ctx, gameID)
}

// ListByDeveloper collects comments across every game of the developer.
func (s *CommentService) ListByDeveloper(ctx context.Context, developerID string) ([]*domain.Comment, error) {
	games, err := s.games.FindByDeveloper(ctx, developerID)
	if err != nil {
		return nil, err
	}
	all := make([]*domain.Comment, 0)
	for _, game := range games {
		comments, err := s.repo.FindByGame(ctx, game.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, comments...)
	}
	return all, nil
}

// GetNested walks developer→game→comment and fails with NotFound when any
// link of the chain is broken or mismatched.
func (s *CommentService) GetNested(ctx context.Context, developerID, gameID, commentID string) (*domain.Comment, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.DeveloperID != developerID {
		return nil, domain.ErrGameNotFound
	}
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.GameID != gameID {
		return nil, domain.ErrCommentNotFound
	}
	return comment, nil
}

// Update is restricted to title and body, admitted for the author or an
// admin.
func (s *CommentService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateCommentInput) (*domain.Comment, error) {
	if err := s.gate.AuthorizeWrite(ctx, p, ActionUpdate, domain.EntityComment, id); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Body != nil {
		existing.Body = *input.Body
	}
	return s.repo.Update(ctx, id, existing)
}

// Delete removes the comment (no children).
func (s *CommentService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := s.gate.AuthorizeWrite(ctx, p, ActionDelete, domain.EntityComment, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
