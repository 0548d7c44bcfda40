package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

const testSecret = "test-secret"

func newTokenFixture(accessTTL, refreshTTL time.Duration) (*TokenService, *stubUserRepo, *domain.User) {
	users := newStubUserRepo()
	u, _ := users.Create(context.Background(), &domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleDev,
	})
	svc := NewTokenService(users, testSecret, accessTTL, refreshTTL, zerolog.Nop())
	return svc, users, u
}

func TestIssueTokens_AccessVerifies(t *testing.T) {
	svc, _, user := newTokenFixture(time.Minute, time.Hour)

	pair, err := svc.IssueTokens(context.Background(), user)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	p, err := svc.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if p.UserID != user.ID || p.Role != domain.RoleDev {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestIssueTokens_StoresRefreshToken(t *testing.T) {
	svc, users, user := newTokenFixture(time.Minute, time.Hour)

	pair, err := svc.IssueTokens(context.Background(), user)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	stored, _ := users.FindByID(context.Background(), user.ID)
	if stored.RefreshToken != pair.RefreshToken {
		t.Fatalf("refresh token not stored on record")
	}
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	svc, _, user := newTokenFixture(time.Minute, time.Hour)
	pair, _ := svc.IssueTokens(context.Background(), user)

	if _, err := svc.VerifyAccess(pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("refresh token must not pass as access, got %v", err)
	}
}

func TestVerifyAccess_ExpiredToken(t *testing.T) {
	users := newStubUserRepo()
	user, _ := users.Create(context.Background(), &domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleDev,
	})
	// Constructed directly so the TTL can be in the past; the constructor
	// clamps non-positive TTLs to defaults.
	svc := &TokenService{
		users:      users,
		secret:     []byte(testSecret),
		accessTTL:  -time.Minute,
		refreshTTL: time.Hour,
		log:        zerolog.Nop(),
	}

	pair, err := svc.IssueTokens(context.Background(), user)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}
	if _, err := svc.VerifyAccess(pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expired token should be invalid, got %v", err)
	}
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	svc, _, user := newTokenFixture(time.Minute, time.Hour)
	pair, _ := svc.IssueTokens(context.Background(), user)

	other := NewTokenService(newStubUserRepo(), "other-secret", time.Minute, time.Hour, zerolog.Nop())
	if _, err := other.VerifyAccess(pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("foreign signature should be invalid, got %v", err)
	}
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	svc, _, user := newTokenFixture(time.Minute, time.Hour)
	pair, _ := svc.IssueTokens(context.Background(), user)

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	p, err := svc.VerifyAccess(access)
	if err != nil {
		t.Fatalf("verify refreshed access: %v", err)
	}
	if p.UserID != user.ID {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestRefresh_PicksUpRoleChange(t *testing.T) {
	svc, users, user := newTokenFixture(time.Minute, time.Hour)
	pair, _ := svc.IssueTokens(context.Background(), user)

	stored, _ := users.FindByID(context.Background(), user.ID)
	stored.Role = domain.RoleAdmin
	if _, err := users.Update(context.Background(), user.ID, stored); err != nil {
		t.Fatalf("update role: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	p, _ := svc.VerifyAccess(access)
	if p.Role != domain.RoleAdmin {
		t.Fatalf("refreshed token should carry the new role, got %q", p.Role)
	}
}

func TestRefresh_SupersededSessionIsRejected(t *testing.T) {
	svc, _, user := newTokenFixture(time.Minute, time.Hour)
	first, _ := svc.IssueTokens(context.Background(), user)

	// A later login replaces the stored refresh token.
	if _, err := svc.IssueTokens(context.Background(), user); err != nil {
		t.Fatalf("second issue: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("old session should be dead, got %v", err)
	}
}

func TestRefresh_AfterLogoutIsRejected(t *testing.T) {
	svc, _, user := newTokenFixture(time.Minute, time.Hour)
	pair, _ := svc.IssueTokens(context.Background(), user)

	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("logged-out session should be dead, got %v", err)
	}
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	svc, _, user := newTokenFixture(time.Minute, time.Hour)
	pair, _ := svc.IssueTokens(context.Background(), user)

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	svc, _, user := newTokenFixture(time.Minute, time.Hour)
	if _, err := svc.IssueTokens(context.Background(), user); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := svc.Logout(context.Background(), "never-issued"); err != nil {
		t.Fatalf("unknown token logout should be a no-op, got %v", err)
	}
}

func TestVerifyAccess_EmptyToken(t *testing.T) {
	svc, _, _ := newTokenFixture(time.Minute, time.Hour)
	if _, err := svc.VerifyAccess(""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
