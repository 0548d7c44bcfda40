package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// GameService implements game administration under the developer ownership
// chain.
type GameService struct {
	repo       ports.GameRepository
	developers ports.DeveloperRepository
	cascade    *CascadeEngine
	gate       *Gate
	log        zerolog.Logger
}

func NewGameService(
	repo ports.GameRepository,
	developers ports.DeveloperRepository,
	cascade *CascadeEngine,
	gate *Gate,
	log zerolog.Logger,
) *GameService {
	return &GameService{
		repo:       repo,
		developers: developers,
		cascade:    cascade,
		gate:       gate,
		log:        log,
	}
}

// Create validates the enums case-exactly, requires the target developer to
// exist, and requires the principal to own it (or be admin).
func (s *GameService) Create(ctx context.Context, p domain.Principal, input ports.CreateGameInput) (*domain.Game, error) {
	if input.Title == "" || input.Language == "" || input.Description == "" {
		return nil, domain.NewValidationError("body", "requires title, language and description")
	}
	if !domain.ValidGenre(input.Genre) {
		return nil, domain.NewValidationError("genre", "is not a recognised genre")
	}
	if !domain.ValidPlatform(input.Platform) {
		return nil, domain.NewValidationError("platform", "is not a recognised platform")
	}
	if !domain.ValidPlayerType(input.PlayerType) {
		return nil, domain.NewValidationError("playerType", "is not a recognised player type")
	}
	if len(input.Photo) == 0 {
		return nil, domain.NewValidationError("photo", "is required")
	}

	if _, err := s.developers.FindByID(ctx, input.DeveloperID); err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeCreate(ctx, p, domain.EntityGame, input.DeveloperID); err != nil {
		return nil, err
	}

	game := &domain.Game{
		Title:             input.Title,
		Genre:             input.Genre,
		Platform:          input.Platform,
		ControllerSupport: input.ControllerSupport,
		Language:          input.Language,
		PlayerType:        input.PlayerType,
		DeveloperID:       input.DeveloperID,
		Photo:             domain.Photo(input.Photo),
		Description:       input.Description,
	}

	created, err := s.repo.Create(ctx, game)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("game_id", created.ID).Str("developer_id", created.DeveloperID).Msg("game created")
	return created, nil
}

func (s *GameService) Get(ctx context.Context, id string, expand ports.ExpandSet) (*ports.GameDetail, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &ports.GameDetail{Game: game}
	if expand.Has(ports.ExpandDeveloper) {
		if dev, err := s.developers.FindByID(ctx, game.DeveloperID); err == nil {
			detail.Developer = dev
		}
	}
	return detail, nil
}

func (s *GameService) List(ctx context.Context, expand ports.ExpandSet) ([]*ports.GameDetail, error) {
	games, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]*ports.GameDetail, 0, len(games))
	for _, game := range games {
		detail := &ports.GameDetail{Game: game}
		if expand.Has(ports.ExpandDeveloper) {
			if dev, err := s.developers.FindByID(ctx, game.DeveloperID); err == nil {
				detail.Developer = dev
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *GameService) ListByDeveloper(ctx context.Context, developerID string) ([]*domain.Game, error) {
	return s.repo.FindByDeveloper(ctx, developerID)
}

// Update re-validates only the supplied fields. Moving the game to another
// developer requires that developer to exist and the principal to own it.
func (s *GameService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateGameInput) (*domain.Game, error) {
	if err := s.gate.AuthorizeWrite(ctx, p, ActionUpdate, domain.EntityGame, id); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Genre != nil {
		if !domain.ValidGenre(*input.Genre) {
			return nil, domain.NewValidationError("genre", "is not a recognised genre")
		}
		existing.Genre = *input.Genre
	}
	if input.Platform != nil {
		if !domain.ValidPlatform(*input.Platform) {
			return nil, domain.NewValidationError("platform", "is not a recognised platform")
		}
		existing.Platform = *input.Platform
	}
	if input.PlayerType != nil {
		if !domain.ValidPlayerType(*input.PlayerType) {
			return nil, domain.NewValidationError("playerType", "is not a recognised player type")
		}
		existing.PlayerType = *input.PlayerType
	}
	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.ControllerSupport != nil {
		existing.ControllerSupport = *input.ControllerSupport
	}
	if input.Language != nil {
		existing.Language = *input.Language
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if len(input.Photo) > 0 {
		existing.Photo = domain.Photo(input.Photo)
	}
	if input.DeveloperID != nil && *input.DeveloperID != existing.DeveloperID {
		if _, err := s.developers.FindByID(ctx, *input.DeveloperID); err != nil {
			return nil, err
		}
		owns, err := s.cascade.CheckOwnership(ctx, p, domain.EntityDeveloper, *input.DeveloperID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, domain.ErrForbidden
		}
		existing.DeveloperID = *input.DeveloperID
	}

	return s.repo.Update(ctx, id, existing)
}

// Delete removes the game and its comments.
func (s *GameService) Delete(ctx context.Context, p domain.Principal, id string) (*domain.CascadeResult, error) {
	if err := s.gate.AuthorizeWrite(ctx, p, ActionDelete, domain.EntityGame, id); err != nil {
		return nil, err
	}
	return s.cascade.CascadeDelete(ctx, domain.EntityGame, id)
}
