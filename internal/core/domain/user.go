package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleDev   = "dev"
	RoleGuest = "guest"
)

// ValidRole reports whether role is one of the three recognised roles.
// Matching is case-exact.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDev, RoleGuest:
		return true
	}
	return false
}

// User models a forum account. Deleting a user cascades to the developers it
// owns and the comments it authored.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"type"`
	Photo        Photo  `json:"photo,omitempty"`
	// RefreshToken holds the single currently valid refresh token for this
	// account. Issuing a new pair overwrites it; logout clears it.
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity derived from a verified access
// token: just an id and a role.
type Principal struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// TokenPair is the result of a successful login: a short-lived access token
// and a long-lived refresh token, both HS256-signed.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
