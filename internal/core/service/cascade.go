package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// CascadeEngine encodes the ownership graph User→Developer→Game→Comment and
// walks it for two purposes: resolving who administers an entity, and
// removing an entity together with all its dependents.
type CascadeEngine struct {
	users      ports.UserRepository
	developers ports.DeveloperRepository
	games      ports.GameRepository
	comments   ports.CommentRepository
	log        zerolog.Logger
}

func NewCascadeEngine(
	users ports.UserRepository,
	developers ports.DeveloperRepository,
	games ports.GameRepository,
	comments ports.CommentRepository,
	log zerolog.Logger,
) *CascadeEngine {
	return &CascadeEngine{
		users:      users,
		developers: developers,
		games:      games,
		comments:   comments,
		log:        log,
	}
}

// ResolveOwner returns the id of the user who administers the entity.
// Developers report their owner; games resolve through their developer;
// comments are governed by authorship, so they report their own author.
// A game whose developer record is missing is a broken chain and fails with
// ErrIntegrity rather than a plain not-found.
func (e *CascadeEngine) ResolveOwner(ctx context.Context, t domain.EntityType, id string) (string, error) {
	switch t {
	case domain.EntityUser:
		user, err := e.users.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		return user.ID, nil

	case domain.EntityDeveloper:
		dev, err := e.developers.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		return dev.OwnerUserID, nil

	case domain.EntityGame:
		game, err := e.games.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		dev, err := e.developers.FindByID(ctx, game.DeveloperID)
		if err != nil {
			if errors.Is(err, domain.ErrDeveloperNotFound) {
				e.log.Error().
					Str("game_id", game.ID).
					Str("developer_id", game.DeveloperID).
					Msg("game references missing developer")
				return "", fmt.Errorf("%w: game %s references missing developer %s",
					domain.ErrIntegrity, game.ID, game.DeveloperID)
			}
			return "", err
		}
		return dev.OwnerUserID, nil

	case domain.EntityComment:
		comment, err := e.comments.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		return comment.UserID, nil
	}

	return "", fmt.Errorf("%w: unknown entity type %q", domain.ErrIntegrity, t)
}

// CheckOwnership reports whether the principal may administer the entity:
// admins always pass, everyone else must be the resolved owner. Not-found
// errors propagate so callers can keep their 404-over-403 ordering.
func (e *CascadeEngine) CheckOwnership(ctx context.Context, p domain.Principal, t domain.EntityType, id string) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	owner, err := e.ResolveOwner(ctx, t, id)
	if err != nil {
		return false, err
	}
	return owner == p.UserID, nil
}

// CascadeDelete removes the entity and every dependent beneath it, strictly
// children before parent. If any child step fails the cascade aborts and the
// parent record survives; partial success is never reported as success.
func (e *CascadeEngine) CascadeDelete(ctx context.Context, t domain.EntityType, id string) (*domain.CascadeResult, error) {
	result := &domain.CascadeResult{}

	switch t {
	case domain.EntityUser:
		n, err := e.comments.DeleteByUser(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("cascade user %s: authored comments: %w", id, err)
		}
		result.Comments += n

		owned, err := e.developers.FindByOwner(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("cascade user %s: list developers: %w", id, err)
		}
		for _, dev := range owned {
			sub, err := e.CascadeDelete(ctx, domain.EntityDeveloper, dev.ID)
			if err != nil {
				return nil, fmt.Errorf("cascade user %s: developer %s: %w", id, dev.ID, err)
			}
			result.Add(*sub)
		}

		if err := e.users.Delete(ctx, id); err != nil {
			return nil, err
		}
		result.Users++

	case domain.EntityDeveloper:
		games, err := e.games.FindByDeveloper(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("cascade developer %s: list games: %w", id, err)
		}
		for _, game := range games {
			n, err := e.comments.DeleteByGame(ctx, game.ID)
			if err != nil {
				return nil, fmt.Errorf("cascade developer %s: comments of game %s: %w", id, game.ID, err)
			}
			result.Comments += n
		}

		n, err := e.games.DeleteByDeveloper(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("cascade developer %s: games: %w", id, err)
		}
		result.Games += n

		if err := e.developers.Delete(ctx, id); err != nil {
			return nil, err
		}
		result.Developers++

	case domain.EntityGame:
		n, err := e.comments.DeleteByGame(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("cascade game %s: comments: %w", id, err)
		}
		result.Comments += n

		if err := e.games.Delete(ctx, id); err != nil {
			return nil, err
		}
		result.Games++

	case domain.EntityComment:
		if err := e.comments.Delete(ctx, id); err != nil {
			return nil, err
		}
		result.Comments++

	default:
		return nil, fmt.Errorf("%w: unknown entity type %q", domain.ErrIntegrity, t)
	}

	e.log.Info().
		Str("entity", string(t)).
		Str("id", id).
		Int64("users", result.Users).
		Int64("developers", result.Developers).
		Int64("games", result.Games).
		Int64("comments", result.Comments).
		Msg("cascade delete completed")

	return result, nil
}
