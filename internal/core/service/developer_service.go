package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// DeveloperService implements studio administration.
type DeveloperService struct {
	repo    ports.DeveloperRepository
	users   ports.UserRepository
	cascade *CascadeEngine
	gate    *Gate
	log     zerolog.Logger
}

func NewDeveloperService(
	repo ports.DeveloperRepository,
	users ports.UserRepository,
	cascade *CascadeEngine,
	gate *Gate,
	log zerolog.Logger,
) *DeveloperService {
	return &DeveloperService{
		repo:    repo,
		users:   users,
		cascade: cascade,
		gate:    gate,
		log:     log,
	}
}

// Create registers a studio. Admin-only; the owning user must exist at
// creation time (it is not re-validated later).
func (s *DeveloperService) Create(ctx context.Context, p domain.Principal, input ports.CreateDeveloperInput) (*domain.Developer, error) {
	if err := s.gate.AuthorizeCreate(ctx, p, domain.EntityDeveloper, ""); err != nil {
		return nil, err
	}

	if input.Name == "" || input.Founder == "" || input.Headquarters == "" || input.Description == "" {
		return nil, domain.NewValidationError("body", "requires name, founder, headquarters and description")
	}
	if input.Founded.IsZero() {
		return nil, domain.NewValidationError("founded", "is required")
	}
	if len(input.Photo) == 0 {
		return nil, domain.NewValidationError("photo", "is required")
	}

	if _, err := s.users.FindByID(ctx, input.OwnerUserID); err != nil {
		return nil, err
	}

	dev := &domain.Developer{
		Name:         input.Name,
		Founder:      input.Founder,
		Founded:      input.Founded,
		Headquarters: input.Headquarters,
		OwnerUserID:  input.OwnerUserID,
		Photo:        domain.Photo(input.Photo),
		Description:  input.Description,
	}

	created, err := s.repo.Create(ctx, dev)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("developer_id", created.ID).Str("owner", created.OwnerUserID).Msg("developer created")
	return created, nil
}

func (s *DeveloperService) Get(ctx context.Context, id string, expand ports.ExpandSet) (*ports.DeveloperDetail, error) {
	dev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &ports.DeveloperDetail{Developer: dev}
	if expand.Has(ports.ExpandUser) {
		// Owner references are only checked at creation time, so a missing
		// owner is tolerated on reads.
		if owner, err := s.users.FindByID(ctx, dev.OwnerUserID); err == nil {
			detail.Owner = owner
		}
	}
	return detail, nil
}

func (s *DeveloperService) List(ctx context.Context, expand ports.ExpandSet) ([]*ports.DeveloperDetail, error) {
	devs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]*ports.DeveloperDetail, 0, len(devs))
	for _, dev := range devs {
		detail := &ports.DeveloperDetail{Developer: dev}
		if expand.Has(ports.ExpandUser) {
			if owner, err := s.users.FindByID(ctx, dev.OwnerUserID); err == nil {
				detail.Owner = owner
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *DeveloperService) ListByOwner(ctx context.Context, userID string) ([]*domain.Developer, error) {
	return s.repo.FindByOwner(ctx, userID)
}

// Update applies the supplied fields. Reassigning the owner is admin-only
// and the new owner must exist.
func (s *DeveloperService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateDeveloperInput) (*domain.Developer, error) {
	if err := s.gate.AuthorizeWrite(ctx, p, ActionUpdate, domain.EntityDeveloper, id); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Founder != nil {
		existing.Founder = *input.Founder
	}
	if input.Founded != nil {
		existing.Founded = *input.Founded
	}
	if input.Headquarters != nil {
		existing.Headquarters = *input.Headquarters
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if len(input.Photo) > 0 {
		existing.Photo = domain.Photo(input.Photo)
	}
	if input.OwnerUserID != nil && *input.OwnerUserID != existing.OwnerUserID {
		if err := s.gate.RequireAdmin(p); err != nil {
			return nil, err
		}
		if _, err := s.users.FindByID(ctx, *input.OwnerUserID); err != nil {
			return nil, err
		}
		existing.OwnerUserID = *input.OwnerUserID
	}

	return s.repo.Update(ctx, id, existing)
}

// Delete removes the studio, its games and their comments.
func (s *DeveloperService) Delete(ctx context.Context, p domain.Principal, id string) (*domain.CascadeResult, error) {
	if err := s.gate.AuthorizeWrite(ctx, p, ActionDelete, domain.EntityDeveloper, id); err != nil {
		return nil, err
	}
	return s.cascade.CascadeDelete(ctx, domain.EntityDeveloper, id)
}
