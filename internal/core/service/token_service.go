package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenService issues, verifies, refreshes and revokes the HS256 token pair.
// Access tokens are stateless; refresh tokens are stateful — the current
// valid one is stored on the user record, so issuing a new pair or logging
// out force-invalidates the previous session.
type TokenService struct {
	users      ports.UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewTokenService(users ports.UserRepository, secret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		users:      users,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// IssueTokens signs a fresh access/refresh pair for the user and overwrites
// the stored refresh token, ending any previous session.
func (s *TokenService) IssueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	access, err := s.sign(user.ID, user.Role, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(user.ID, user.Role, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates signature, expiry and token type, and returns the
// embedded principal. It never touches the store.
func (s *TokenService) VerifyAccess(token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	claims, err := s.parse(token)
	if err != nil {
		return domain.Principal{}, err
	}
	if claims["typ"] != tokenTypeAccess {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	return principalFromClaims(claims)
}

// Refresh exchanges a valid refresh token for a new access token. The token
// must verify cryptographically AND match the one stored on the user record;
// anything else is Denied, so a logout or a newer login kills old sessions.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrUnauthenticated
	}
	claims, err := s.parse(refreshToken)
	if err != nil {
		return "", err
	}
	if claims["typ"] != tokenTypeRefresh {
		return "", domain.ErrInvalidToken
	}
	p, err := principalFromClaims(claims)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		s.log.Warn().Str("user_id", user.ID).Msg("refresh token does not match stored session")
		return "", domain.ErrInvalidToken
	}

	// Role is re-read from the record so a role change takes effect on the
	// next refresh, not only on the next login.
	access, err := s.sign(user.ID, user.Role, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return access, nil
}

// Logout clears the stored refresh token for the session. Tokens that match
// no user are treated as already logged out.
func (s *TokenService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	return s.users.SetRefreshToken(ctx, user.ID, "")
}

func (s *TokenService) sign(userID, role, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"typ":  typ,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *TokenService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func principalFromClaims(claims jwt.MapClaims) (domain.Principal, error) {
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || !domain.ValidRole(role) {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	return domain.Principal{UserID: sub, Role: role}, nil
}
