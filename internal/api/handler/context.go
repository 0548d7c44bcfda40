package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Henderxo/SaitynasAPI/internal/api/middleware"
	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: its presence proves
// the middleware ran on this route.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := middleware.Principal(c)
	if !ok || principal.UserID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
