package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

// In-memory repositories shared by the service tests. They mirror the
// repository contracts exactly, including the not-found sentinels, so the
// services and the cascade engine exercise the same error paths as against
// MongoDB.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
	// failDelete makes Delete fail once, for abort-path tests.
	failDelete bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[id]; !ok {
		return nil, domain.ErrUserNotFound
	}
	c := cloneUser(user)
	c.ID = id
	r.users[id] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.failDelete {
		r.failDelete = false
		return fmt.Errorf("simulated store failure")
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetRefreshToken(_ context.Context, id, token string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *stubUserRepo) FindByRefreshToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.RefreshToken != "" && u.RefreshToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubDeveloperRepo struct {
	developers map[string]*domain.Developer
	nextID     int
}

func newStubDeveloperRepo() *stubDeveloperRepo {
	return &stubDeveloperRepo{developers: make(map[string]*domain.Developer)}
}

func cloneDeveloper(d *domain.Developer) *domain.Developer {
	c := *d
	return &c
}

func (r *stubDeveloperRepo) Create(_ context.Context, dev *domain.Developer) (*domain.Developer, error) {
	r.nextID++
	c := cloneDeveloper(dev)
	c.ID = fmt.Sprintf("d%d", r.nextID)
	r.developers[c.ID] = c
	return cloneDeveloper(c), nil
}

func (r *stubDeveloperRepo) FindByID(_ context.Context, id string) (*domain.Developer, error) {
	d, ok := r.developers[id]
	if !ok {
		return nil, domain.ErrDeveloperNotFound
	}
	return cloneDeveloper(d), nil
}

func (r *stubDeveloperRepo) FindAll(_ context.Context) ([]*domain.Developer, error) {
	out := make([]*domain.Developer, 0, len(r.developers))
	for _, d := range r.developers {
		out = append(out, cloneDeveloper(d))
	}
	return out, nil
}

func (r *stubDeveloperRepo) FindByOwner(_ context.Context, userID string) ([]*domain.Developer, error) {
	var out []*domain.Developer
	for _, d := range r.developers {
		if d.OwnerUserID == userID {
			out = append(out, cloneDeveloper(d))
		}
	}
	return out, nil
}

func (r *stubDeveloperRepo) Update(_ context.Context, id string, dev *domain.Developer) (*domain.Developer, error) {
	if _, ok := r.developers[id]; !ok {
		return nil, domain.ErrDeveloperNotFound
	}
	c := cloneDeveloper(dev)
	c.ID = id
	r.developers[id] = c
	return cloneDeveloper(c), nil
}

func (r *stubDeveloperRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.developers[id]; !ok {
		return domain.ErrDeveloperNotFound
	}
	delete(r.developers, id)
	return nil
}

type stubGameRepo struct {
	games  map[string]*domain.Game
	nextID int
}

func newStubGameRepo() *stubGameRepo {
	return &stubGameRepo{games: make(map[string]*domain.Game)}
}

func cloneGame(g *domain.Game) *domain.Game {
	c := *g
	return &c
}

func (r *stubGameRepo) Create(_ context.Context, game *domain.Game) (*domain.Game, error) {
	r.nextID++
	c := cloneGame(game)
	c.ID = fmt.Sprintf("g%d", r.nextID)
	r.games[c.ID] = c
	return cloneGame(c), nil
}

func (r *stubGameRepo) FindByID(_ context.Context, id string) (*domain.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return cloneGame(g), nil
}

func (r *stubGameRepo) FindAll(_ context.Context) ([]*domain.Game, error) {
	out := make([]*domain.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, cloneGame(g))
	}
	return out, nil
}

func (r *stubGameRepo) FindByDeveloper(_ context.Context, developerID string) ([]*domain.Game, error) {
	var out []*domain.Game
	for _, g := range r.games {
		if g.DeveloperID == developerID {
			out = append(out, cloneGame(g))
		}
	}
	return out, nil
}

func (r *stubGameRepo) Update(_ context.Context, id string, game *domain.Game) (*domain.Game, error) {
	if _, ok := r.games[id]; !ok {
		return nil, domain.ErrGameNotFound
	}
	c := cloneGame(game)
	c.ID = id
	r.games[id] = c
	return cloneGame(c), nil
}

func (r *stubGameRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.games[id]; !ok {
		return domain.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *stubGameRepo) DeleteByDeveloper(_ context.Context, developerID string) (int64, error) {
	var n int64
	for id, g := range r.games {
		if g.DeveloperID == developerID {
			delete(r.games, id)
			n++
		}
	}
	return n, nil
}

type stubCommentRepo struct {
	comments map[string]*domain.Comment
	nextID   int
	// failDeleteByGame makes DeleteByGame fail once, for abort-path tests.
	failDeleteByGame bool
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func cloneComment(c *domain.Comment) *domain.Comment {
	cp := *c
	return &cp
}

func (r *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.nextID++
	c := cloneComment(comment)
	c.ID = fmt.Sprintf("c%d", r.nextID)
	r.comments[c.ID] = c
	return cloneComment(c), nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (r *stubCommentRepo) FindAll(_ context.Context) ([]*domain.Comment, error) {
	out := make([]*domain.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		out = append(out, cloneComment(c))
	}
	return out, nil
}

func (r *stubCommentRepo) FindByGame(_ context.Context, gameID string) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.GameID == gameID {
			out = append(out, cloneComment(c))
		}
	}
	return out, nil
}

func (r *stubCommentRepo) FindByUser(_ context.Context, userID string) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.UserID == userID {
			out = append(out, cloneComment(c))
		}
	}
	return out, nil
}

func (r *stubCommentRepo) Update(_ context.Context, id string, comment *domain.Comment) (*domain.Comment, error) {
	existing, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	existing.Title = comment.Title
	existing.Body = comment.Body
	return cloneComment(existing), nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) DeleteByGame(_ context.Context, gameID string) (int64, error) {
	if r.failDeleteByGame {
		r.failDeleteByGame = false
		return 0, fmt.Errorf("simulated store failure")
	}
	var n int64
	for id, c := range r.comments {
		if c.GameID == gameID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

func (r *stubCommentRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, c := range r.comments {
		if c.UserID == userID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

// stubLimiter records limiter calls without throttling by default.
type stubLimiter struct {
	blocked  bool
	failures int
	resets   int
}

func (l *stubLimiter) TooManyAttempts(_ context.Context, _ string) (bool, error) {
	return l.blocked, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, _ string) error {
	l.failures++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, _ string) error {
	l.resets++
	return nil
}

// fixture bundles the repositories, engine and gate most tests need.
type fixture struct {
	users      *stubUserRepo
	developers *stubDeveloperRepo
	games      *stubGameRepo
	comments   *stubCommentRepo
	engine     *CascadeEngine
	gate       *Gate
}

func newFixture() *fixture {
	f := &fixture{
		users:      newStubUserRepo(),
		developers: newStubDeveloperRepo(),
		games:      newStubGameRepo(),
		comments:   newStubCommentRepo(),
	}
	f.engine = NewCascadeEngine(f.users, f.developers, f.games, f.comments, zerolog.Nop())
	f.gate = NewGate(f.engine)
	return f
}

func (f *fixture) addUser(role string) *domain.User {
	u, _ := f.users.Create(context.Background(), &domain.User{
		Username: "user" + role,
		Email:    fmt.Sprintf("%s%d@example.com", role, f.users.nextID+1),
		Role:     role,
	})
	return u
}

func (f *fixture) addDeveloper(ownerID string) *domain.Developer {
	d, _ := f.developers.Create(context.Background(), &domain.Developer{
		Name:        "Studio",
		OwnerUserID: ownerID,
	})
	return d
}

func (f *fixture) addGame(developerID string) *domain.Game {
	g, _ := f.games.Create(context.Background(), &domain.Game{
		Title:       "Title",
		Genre:       domain.GenreAction,
		Platform:    domain.PlatformPc,
		PlayerType:  domain.PlayerTypeSingle,
		Language:    "English",
		DeveloperID: developerID,
	})
	return g
}

func (f *fixture) addComment(gameID, userID string) *domain.Comment {
	c, _ := f.comments.Create(context.Background(), &domain.Comment{
		Title:  "t",
		Body:   "b",
		GameID: gameID,
		UserID: userID,
	})
	return c
}
