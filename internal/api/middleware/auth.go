package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
)

// IdentityLoader resolves a serialized session id back into a full user.
// A missing user yields (nil, nil).
type IdentityLoader interface {
	DeserializeIdentity(ctx context.Context, id string) (*domain.User, error)
}

// Auth validates the bearer JWT, deserializes the identity carried in the
// sub claim and injects the user into the request context. A token whose
// identity no longer resolves is rejected; the session is stale.
func Auth(jwtSecret string, identities IdentityLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
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
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
			}

			user, err := identities.DeserializeIdentity(c.Request().Context(), sub)
			if err != nil {
				return err
			}
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown identity")
			}

			c.Set("identity", user)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}
