package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RBAC(allowed...)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec
}

func TestRBAC(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"admin allowed", domain.RoleAdmin, []string{domain.RoleAdmin, domain.RolePremium}, http.StatusOK},
		{"premium allowed", domain.RolePremium, []string{domain.RoleAdmin, domain.RolePremium}, http.StatusOK},
		{"user forbidden", domain.RoleUser, []string{domain.RoleAdmin, domain.RolePremium}, http.StatusForbidden},
		{"missing role forbidden", "", []string{domain.RoleAdmin}, http.StatusForbidden},
		{"empty allow list forbids everyone", domain.RoleAdmin, nil, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runRBAC(t, tc.role, tc.allowed...)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
