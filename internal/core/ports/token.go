package ports

import (
	"context"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

// AccessVerifier validates an access token and extracts its principal.
// The check is a single signature verification plus expiry — no store lookup.
type AccessVerifier interface {
	VerifyAccess(token string) (domain.Principal, error)
}

// TokenService manages the session lifecycle: issue, verify, refresh, revoke.
type TokenService interface {
	AccessVerifier

	// IssueTokens signs a new access/refresh pair and stores the refresh
	// token on the user record, invalidating any previous session.
	IssueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error)

	// Refresh verifies the refresh token against both its signature and the
	// value stored on the user record, then signs a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Logout clears the stored refresh token for the matching user. Unknown
	// tokens are a no-op.
	Logout(ctx context.Context, refreshToken string) error
}
