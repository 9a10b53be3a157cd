package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
)

// identityKey is where the Auth middleware stores the deserialized user.
const identityKey = "identity"

// ctxIdentity extracts the authenticated user injected by the Auth
// middleware. Its absence means the middleware did not run or the session
// id no longer resolves to a user; either way the request is unauthenticated.
func ctxIdentity(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(identityKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return user, nil
}
