package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Henderxo/SaitynasAPI/internal/api/metrics"
	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// AuthHandler handles the session lifecycle routes: login, refresh, logout.
type AuthHandler struct {
	users      ports.UserService
	tokens     ports.TokenService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthHandler(users ports.UserService, tokens ports.TokenService, accessTTL, refreshTTL time.Duration) *AuthHandler {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthHandler{users: users, tokens: tokens, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login authenticates a user and returns a token pair, additionally set as
// httpOnly cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, user, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrTooManyAttempts:
			metrics.AuthAttemptsTotal.WithLabelValues("rate_limited").Inc()
		case domain.ErrInvalidCredentials:
			metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		default:
			metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()

	setTokenCookie(c, accessCookie, pair.AccessToken, h.accessTTL)
	setTokenCookie(c, refreshCookie, pair.RefreshToken, h.refreshTTL)

	return c.JSON(http.StatusOK, loginResponse{Token: pair.AccessToken, User: user})
}

// Refresh exchanges a valid refresh token for a new access token. The token
// is read from the cookie, falling back to the request body.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token (fallback when the cookie is absent)"
// @Success      200   {object}  refreshResponse
// @Failure      401   {object}  map[string]string
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := h.refreshTokenFrom(c)
	if token == "" {
		return domain.ErrUnauthenticated
	}

	access, err := h.tokens.Refresh(c.Request().Context(), token)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("denied").Inc()
		return err
	}
	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()

	setTokenCookie(c, accessCookie, access, h.accessTTL)
	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}

// Logout revokes the current session and expires both cookies. A missing or
// unknown token is still a successful logout.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.refreshTokenFrom(c); token != "" {
		if err := h.tokens.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}

	expireTokenCookie(c, accessCookie)
	expireTokenCookie(c, refreshCookie)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) refreshTokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(refreshCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func setTokenCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func expireTokenCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
