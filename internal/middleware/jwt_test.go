package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/utils"
)

const testSecret = "test-secret"

func runProtected(t *testing.T, authHeader string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	e.GET("/protected", handler)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, role, 5)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + tok.Token
}

func TestJWTAuth(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"valid token", bearer(t, 42, "CLIENT"), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runProtected(t, tc.header, JWTAuth(testSecret))
			if rec.Code != tc.status {
				t.Fatalf("want %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, "CLIENT", 5)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	rec := runProtected(t, "Bearer "+tok.Token, JWTAuth(testSecret))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		allowed []string
		status  int
	}{
		{"exact match", "STAFF", []string{"STAFF"}, http.StatusOK},
		{"one of several", "CASHIER", []string{"CASHIER", "STAFF"}, http.StatusOK},
		{"wrong role", "CLIENT", []string{"STAFF"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runProtected(t, bearer(t, 1, tc.role), JWTAuth(testSecret), RequireRole(tc.allowed...))
			if rec.Code != tc.status {
				t.Fatalf("want %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	// RequireRole alone, with no JWTAuth having run, must refuse.
	rec := runProtected(t, "", RequireRole("STAFF"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d", rec.Code)
	}
}
