package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// KeySession holds the resolved domain.Session.
const KeySession = "session"

// Session resolves the caller's role once per request and stores the
// resulting domain.Session in context. It must run after Auth.
func Session(resolver ports.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(KeyUserID).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			email, _ := c.Get(KeyEmail).(string)

			c.Set(KeySession, resolver.Resolve(c.Request().Context(), userID, email))
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by Session.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(KeySession).(domain.Session)
	return s, ok
}
