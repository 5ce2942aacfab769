package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contactkeep/contacts-api/internal/api/middleware"
	"github.com/contactkeep/contacts-api/internal/core/domain"
)

// currentUser extracts the user bound by the Auth middleware. Its absence
// means the middleware did not run on this route; reject rather than proceed
// without an identity.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	return user, nil
}
