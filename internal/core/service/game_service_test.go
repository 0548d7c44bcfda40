package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

func newGameServiceFixture() (*GameService, *fixture) {
	f := newFixture()
	svc := NewGameService(f.games, f.developers, f.engine, f.gate, zerolog.Nop())
	return svc, f
}

func validGameInput(developerID string) ports.CreateGameInput {
	return ports.CreateGameInput{
		Title:       "Starfall",
		Genre:       domain.GenreAction,
		Platform:    domain.PlatformPc,
		Language:    "English",
		PlayerType:  domain.PlayerTypeSingle,
		DeveloperID: developerID,
		Photo:       testPhoto,
		Description: "A space game",
	}
}

func TestCreateGame_HappyPath(t *testing.T) {
	svc, f := newGameServiceFixture()
	owner := f.addUser(domain.RoleDev)
	dev := f.addDeveloper(owner.ID)

	p := domain.Principal{UserID: owner.ID, Role: domain.RoleDev}
	game, err := svc.Create(context.Background(), p, validGameInput(dev.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if game.ID == "" || game.DeveloperID != dev.ID {
		t.Fatalf("unexpected game: %+v", game)
	}
}

func TestCreateGame_EnumsAreCaseExact(t *testing.T) {
	svc, f := newGameServiceFixture()
	owner := f.addUser(domain.RoleDev)
	dev := f.addDeveloper(owner.ID)
	p := domain.Principal{UserID: owner.ID, Role: domain.RoleDev}

	cases := []struct {
		name   string
		mutate func(*ports.CreateGameInput)
	}{
		{"lowercase genre", func(in *ports.CreateGameInput) { in.Genre = "action" }},
		{"uppercase genre", func(in *ports.CreateGameInput) { in.Genre = "ACTION" }},
		{"lowercase platform", func(in *ports.CreateGameInput) { in.Platform = "pc" }},
		{"unknown platform", func(in *ports.CreateGameInput) { in.Platform = "Dreamcast" }},
		{"lowercase player type", func(in *ports.CreateGameInput) { in.PlayerType = "single_player" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validGameInput(dev.ID)
			tc.mutate(&in)
			if _, err := svc.Create(context.Background(), p, in); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	// The canonical spellings pass as-is.
	if _, err := svc.Create(context.Background(), p, validGameInput(dev.ID)); err != nil {
		t.Fatalf("canonical enums rejected: %v", err)
	}
}

func TestCreateGame_MissingDeveloper(t *testing.T) {
	svc, f := newGameServiceFixture()
	owner := f.addUser(domain.RoleDev)

	p := domain.Principal{UserID: owner.ID, Role: domain.RoleDev}
	if _, err := svc.Create(context.Background(), p, validGameInput("missing")); !errors.Is(err, domain.ErrDeveloperNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCreateGame_ForeignDeveloperForbidden(t *testing.T) {
	svc, f := newGameServiceFixture()
	owner := f.addUser(domain.RoleDev)
	stranger := f.addUser(domain.RoleDev)
	dev := f.addDeveloper(owner.ID)

	p := domain.Principal{UserID: stranger.ID, Role: domain.RoleDev}
	if _, err := svc.Create(context.Background(), p, validGameInput(dev.ID)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Admins may create under any developer.
	admin := domain.Principal{UserID: "root", Role: domain.RoleAdmin}
	if _, err := svc.Create(context.Background(), admin, validGameInput(dev.ID)); err != nil {
		t.Fatalf("admin create rejected: %v", err)
	}
}

func TestUpdateGame_PartialAndEnumRevalidation(t *testing.T) {
	svc, f := newGameServiceFixture()
	owner := f.addUser(domain.RoleDev)
	dev := f.addDeveloper(owner.ID)
	game := f.addGame(dev.ID)
	p := domain.Principal{UserID: owner.ID, Role: domain.RoleDev}

	title := "Renamed"
	updated, err := svc.Update(context.Background(), p, game.ID, ports.UpdateGameInput{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" || updated.Genre != domain.GenreAction {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}

	bad := "strategy"
	if _, err := svc.Update(context.Background(), p, game.ID, ports.UpdateGameInput{Genre: &bad}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateGame_MoveToForeignDeveloper(t *testing.T) {
	svc, f := newGameServiceFixture()
	owner := f.addUser(domain.RoleDev)
	other := f.addUser(domain.RoleDev)
	dev := f.addDeveloper(owner.ID)
	foreign := f.addDeveloper(other.ID)
	game := f.addGame(dev.ID)

	p := domain.Principal{UserID: owner.ID, Role: domain.RoleDev}
	if _, err := svc.Update(context.Background(), p, game.ID, ports.UpdateGameInput{DeveloperID: &foreign.ID}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	missing := "missing"
	if _, err := svc.Update(context.Background(), p, game.ID, ports.UpdateGameInput{DeveloperID: &missing}); !errors.Is(err, domain.ErrDeveloperNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDeleteGame_CascadesToComments(t *testing.T) {
	svc, f := newGameServiceFixture()
	owner := f.addUser(domain.RoleDev)
	dev := f.addDeveloper(owner.ID)
	game := f.addGame(dev.ID)
	f.addComment(game.ID, owner.ID)
	f.addComment(game.ID, owner.ID)

	p := domain.Principal{UserID: owner.ID, Role: domain.RoleDev}
	result, err := svc.Delete(context.Background(), p, game.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if result.Games != 1 || result.Comments != 2 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestGetGame_ExpandToleratesMissingDeveloper(t *testing.T) {
	svc, f := newGameServiceFixture()
	game, _ := f.games.Create(context.Background(), &domain.Game{
		Title:       "orphan",
		DeveloperID: "missing",
	})

	detail, err := svc.Get(context.Background(), game.ID, ports.ParseExpand("developer"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Developer != nil {
		t.Fatalf("missing developer should stay nil")
	}
	if detail.Game.ID != game.ID {
		t.Fatalf("unexpected game: %+v", detail.Game)
	}
}
