package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"zenlarn/auth"
)

const identityKey = "identity_email"

// RequireToken extracts and validates the bearer token, then stores the
// caller's identity on the request context for handlers downstream.
func RequireToken(tokens auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(identityKey, claims.Email)
			return next(c)
		}
	}
}

func identity(c echo.Context) string {
	email, _ := c.Get(identityKey).(string)
	return email
}
