package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestLogin_SetsCookiesAndBody(t *testing.T) {
	e := newEcho()
	users := &stubUserService{
		loginPair: &domain.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
		loginUser: &domain.User{ID: "u1", Username: "alice", Role: domain.RoleGuest},
	}
	h := NewAuthHandler(users, &stubTokenService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"alice@example.com","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if users.gotEmail != "alice@example.com" {
		t.Fatalf("email not forwarded, got %q", users.gotEmail)
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Token != "acc" || body.User == nil || body.User.ID != "u1" {
		t.Fatalf("unexpected body: %+v", body)
	}

	cookies := rec.Result().Cookies()
	var names []string
	for _, ck := range cookies {
		names = append(names, ck.Name)
		if !ck.HttpOnly {
			t.Fatalf("cookie %s must be httpOnly", ck.Name)
		}
	}
	if len(cookies) != 2 {
		t.Fatalf("expected access and refresh cookies, got %v", names)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubUserService{}, &stubTokenService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"alice@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLogin_InvalidCredentialsPassThrough(t *testing.T) {
	e := newEcho()
	users := &stubUserService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(users, &stubTokenService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"alice@example.com","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestRefresh_PrefersCookie(t *testing.T) {
	e := newEcho()
	tokens := &stubTokenService{access: "new-access"}
	h := NewAuthHandler(&stubUserService{}, tokens, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "cookie-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tokens.gotRefresh != "cookie-token" {
		t.Fatalf("expected cookie token, got %q", tokens.gotRefresh)
	}

	var body refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.AccessToken != "new-access" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRefresh_FallsBackToBody(t *testing.T) {
	e := newEcho()
	tokens := &stubTokenService{access: "new-access"}
	h := NewAuthHandler(&stubUserService{}, tokens, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/refresh",
		strings.NewReader(`{"refreshToken":"body-token"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tokens.gotRefresh != "body-token" {
		t.Fatalf("expected body token, got %q", tokens.gotRefresh)
	}
}

func TestRefresh_MissingToken(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubUserService{}, &stubTokenService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestLogout_RevokesAndExpiresCookies(t *testing.T) {
	e := newEcho()
	tokens := &stubTokenService{}
	h := NewAuthHandler(&stubUserService{}, tokens, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "live-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if tokens.gotLogout != "live-token" {
		t.Fatalf("revocation not forwarded, got %q", tokens.gotLogout)
	}

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge != -1 {
			t.Fatalf("cookie %s should be expired", ck.Name)
		}
	}
}

func TestLogout_WithoutTokenStillSucceeds(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubUserService{}, &stubTokenService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
