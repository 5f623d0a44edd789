package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShardulMane20/Quick-Desk/internal/api/middleware"
	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

// currentSession returns the session resolved by the Session middleware.
// A missing session means the route was mounted without it; reject with 401
// rather than reaching the services with an anonymous caller.
func currentSession(c echo.Context) (domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok || s.UserID == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return s, nil
}
