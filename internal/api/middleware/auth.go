package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/contactkeep/contacts-api/internal/core/ports"
)

// UserContextKey is the echo.Context key the resolved user is bound under.
const UserContextKey = "current_user"

// Auth resolves the request identity: it extracts the bearer token, verifies
// it, loads the subject's user record and injects it into the context. Every
// failure branch returns the same 401 with a Bearer challenge so the response
// does not reveal why authentication failed.
func Auth(tokens ports.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthenticated(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthenticated(c)
			}

			subject, err := tokens.Verify(parts[1])
			if err != nil {
				return unauthenticated(c)
			}

			user, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				return unauthenticated(c)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
}
