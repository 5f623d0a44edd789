package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// Context keys set by Auth.
const (
	KeyUserID    = "user_id"
	KeyEmail     = "email"
	KeyTokenID   = "jti"
	KeyExpiresAt = "exp"
)

// Auth validates the JWT, rejects revoked tokens and injects the identity
// claims into context. Browsers cannot set headers on WebSocket upgrades, so
// the access_token query parameter is accepted when the header is absent.
// A nil tokens store disables the revocation check.
func Auth(jwtSecret string, tokens ports.TokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}
			email, _ := claims["email"].(string)
			jti, _ := claims["jti"].(string)

			if tokens != nil && jti != "" {
				revoked, err := tokens.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			var exp time.Time
			if e, err := claims.GetExpirationTime(); err == nil && e != nil {
				exp = e.Time
			}

			c.Set(KeyUserID, sub)
			c.Set(KeyEmail, email)
			c.Set(KeyTokenID, jti)
			c.Set(KeyExpiresAt, exp)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if t := c.QueryParam("access_token"); t != "" {
			return t, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
