package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// LoginLimiter throttles credential guessing (Redis-backed in production).
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// UserService implements signup, login and user administration.
type UserService struct {
	repo    ports.UserRepository
	cascade *CascadeEngine
	gate    *Gate
	tokens  ports.TokenService
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	cascade *CascadeEngine,
	gate *Gate,
	tokens ports.TokenService,
	limiter LoginLimiter,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		repo:    repo,
		cascade: cascade,
		gate:    gate,
		tokens:  tokens,
		limiter: limiter,
		log:     log,
	}
}

// Register creates an account. Role must be one of admin/dev/guest, the
// email must parse, and the photo is required.
func (s *UserService) Register(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if input.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.NewValidationError("type", "must be one of: admin, dev, guest")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domain.NewValidationError("email", "is not a valid address")
	}
	if len(input.Photo) == 0 {
		return nil, domain.NewValidationError("photo", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Photo:        domain.Photo(input.Photo),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a fresh token pair. Both the
// missing-user and the bad-password paths return the same error so account
// existence is not probeable.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyAttempts(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if blocked {
			return nil, nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.recordFailure(ctx, email)
		return nil, nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return pair, user, nil
}

func (s *UserService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

// Update replaces every mutable field. The gate admits self or admin;
// changing the role is additionally admin-only.
func (s *UserService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if err := s.gate.AuthorizeWrite(ctx, p, ActionUpdate, domain.EntityUser, id); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username == "" || input.Email == "" || input.Password == "" || input.Role == "" || len(input.Photo) == 0 {
		return nil, domain.NewValidationError("body", "requires username, email, password, type and photo")
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.NewValidationError("type", "must be one of: admin, dev, guest")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domain.NewValidationError("email", "is not a valid address")
	}
	if input.Role != existing.Role {
		if err := s.gate.RequireAdmin(p); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	updated := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Photo:        domain.Photo(input.Photo),
		RefreshToken: existing.RefreshToken,
		CreatedAt:    existing.CreatedAt,
	}
	return s.repo.Update(ctx, id, updated)
}

// Delete removes the user and cascades to owned developers and authored
// comments.
func (s *UserService) Delete(ctx context.Context, p domain.Principal, id string) (*domain.CascadeResult, error) {
	if err := s.gate.AuthorizeWrite(ctx, p, ActionDelete, domain.EntityUser, id); err != nil {
		return nil, err
	}
	return s.cascade.CascadeDelete(ctx, domain.EntityUser, id)
}
