package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

func contextWithRole(e *echo.Echo, role, accountID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(AuthenticatedKey, true)
		c.Set(ClaimsKey, domain.ClaimSet{AccountID: accountID, Role: role})
	}
	return c, rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuthenticated(t *testing.T) {
	e := echo.New()

	c, rec := contextWithRole(e, "", "")
	if err := RequireAuthenticated()(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != loginPath {
		t.Fatalf("anonymous not redirected to login: %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	c, rec = contextWithRole(e, domain.RoleClient, "acc_1")
	if err := RequireAuthenticated()(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated caller blocked: %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	guard := RequireRole(domain.RoleEmployee, domain.RoleAdmin)

	cases := []struct {
		name     string
		role     string
		wantCode int
	}{
		{"anonymous", "", http.StatusForbidden},
		{"client", domain.RoleClient, http.StatusForbidden},
		{"employee", domain.RoleEmployee, http.StatusOK},
		{"admin", domain.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := contextWithRole(e, tc.role, "acc_1")
			if err := guard(okHandler)(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("got %d, want %d", rec.Code, tc.wantCode)
			}
			if tc.wantCode == http.StatusForbidden && !strings.Contains(rec.Body.String(), "account/login") {
				t.Fatalf("forbidden response does not render the login surface: %s", rec.Body.String())
			}
		})
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	e := echo.New()
	guard := RequireSelfOrAdmin("account_id")

	cases := []struct {
		name         string
		role         string
		accountID    string
		target       string
		wantCode     int
		wantLocation string
	}{
		{"self", domain.RoleClient, "acc_1", "acc_1", http.StatusOK, ""},
		{"admin on other", domain.RoleAdmin, "acc_9", "acc_1", http.StatusOK, ""},
		{"client on other", domain.RoleClient, "acc_2", "acc_1", http.StatusSeeOther, "/account"},
		{"employee on other", domain.RoleEmployee, "acc_2", "acc_1", http.StatusSeeOther, "/account"},
		{"anonymous", "", "", "acc_1", http.StatusSeeOther, loginPath},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := contextWithRole(e, tc.role, tc.accountID)
			c.SetParamNames("account_id")
			c.SetParamValues(tc.target)

			if err := guard(okHandler)(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("got %d, want %d", rec.Code, tc.wantCode)
			}
			if tc.wantLocation != "" && rec.Header().Get(echo.HeaderLocation) != tc.wantLocation {
				t.Fatalf("got location %q, want %q", rec.Header().Get(echo.HeaderLocation), tc.wantLocation)
			}
		})
	}
}
