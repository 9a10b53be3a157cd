package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/tiendavale/ecommerce-api/internal/api/metrics"
	"github.com/tiendavale/ecommerce-api/internal/core/ports"
)

// AuthHandler exposes the three authentication strategies over HTTP and
// issues the session token that carries the serialized identity.
type AuthHandler struct {
	authService ports.AuthService
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Profile and credential"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  rejectionResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
		Password:  req.Password,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failed").Inc()
		return err
	}
	if !outcome.Accepted {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
		// Missing input is a bad request; everything else on this path is a
		// conflict with an existing account.
		status := http.StatusConflict
		if outcome.Reason == ports.ReasonMissingCredentials {
			status = http.StatusBadRequest
		}
		return c.JSON(status, rejectionResponse{Status: "rejected", Reason: outcome.Reason})
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "accepted").Inc()
	return c.JSON(http.StatusCreated, authResponse{User: outcome.Identity})
}

// Login authenticates a user and returns the session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  rejectionResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failed").Inc()
		return err
	}
	if !outcome.Accepted {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return c.JSON(http.StatusUnauthorized, rejectionResponse{Status: "rejected", Reason: outcome.Reason})
	}

	token, err := h.signToken(outcome)
	if err != nil {
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "accepted").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: outcome.Identity})
}

// ResetPassword replaces the credential of an existing account.
//
// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email and new password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  rejectionResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.NewPassword)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("reset_password", "failed").Inc()
		return err
	}
	if !outcome.Accepted {
		metrics.AuthAttemptsTotal.WithLabelValues("reset_password", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, rejectionResponse{Status: "rejected", Reason: outcome.Reason})
	}

	metrics.AuthAttemptsTotal.WithLabelValues("reset_password", "accepted").Inc()
	return c.JSON(http.StatusOK, authResponse{User: outcome.Identity})
}

// Current returns the identity behind the session token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/current [get]
func (h *AuthHandler) Current(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: user})
}

// signToken embeds the serialized identity in the sub claim; the Auth
// middleware deserializes it on every request.
func (h *AuthHandler) signToken(outcome ports.Outcome) (string, error) {
	claims := jwt.MapClaims{
		"sub":   h.authService.SerializeIdentity(outcome.Identity),
		"email": outcome.Identity.Email,
		"role":  outcome.Identity.Role,
		"exp":   time.Now().Add(h.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}
