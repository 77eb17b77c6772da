package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/auth"
)

// guardRequest runs a request through a single guard with the given claims
// pre-set in the context, the way the gateway would leave them.
func guardRequest(guard echo.MiddlewareFunc, claims *auth.SessionClaims) int {
	e := echo.New()
	handler := guard(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(sessionContextKey, claims)
	}
	_ = handler(c)
	return rec.Code
}

func claimsFor(role string, super bool) *auth.SessionClaims {
	return &auth.SessionClaims{UserID: 1, Email: "u@example.com", Role: role, SuperAdmin: super}
}

// Full escalation matrix: every role tier against every guard.
func TestGuardMatrix(t *testing.T) {
	sessions := auth.NewSessions("secret", 30, &stubRevocations{revoked: map[string]bool{}})
	requireAuth := RequireAuth(sessions, testCookiePrefix)
	requireAdmin := RequireAdmin(sessions, testCookiePrefix)
	requireSuper := RequireSuperAdmin(sessions, testCookiePrefix)

	tests := []struct {
		name      string
		claims    *auth.SessionClaims
		wantAuth  int
		wantAdmin int
		wantSuper int
	}{
		{"anonymous", nil, 401, 401, 401},
		{"user", claimsFor("user", false), 200, 403, 403},
		{"admin", claimsFor("admin", false), 200, 200, 403},
		{"superadmin", claimsFor("superadmin", false), 200, 200, 200},
		{"user with super flag", claimsFor("user", true), 200, 200, 403},
		{"admin with super flag", claimsFor("admin", true), 200, 200, 403},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guardRequest(requireAuth, tt.claims); got != tt.wantAuth {
				t.Errorf("RequireAuth = %d, want %d", got, tt.wantAuth)
			}
			if got := guardRequest(requireAdmin, tt.claims); got != tt.wantAdmin {
				t.Errorf("RequireAdmin = %d, want %d", got, tt.wantAdmin)
			}
			if got := guardRequest(requireSuper, tt.claims); got != tt.wantSuper {
				t.Errorf("RequireSuperAdmin = %d, want %d", got, tt.wantSuper)
			}
		})
	}
}

// A guard reached without gateway context must validate the cookie itself.
func TestGuardCookieFallback(t *testing.T) {
	sessions := auth.NewSessions("secret", 30, &stubRevocations{revoked: map[string]bool{}})

	e := echo.New()
	// No Gateway middleware on purpose.
	e.GET("/admin-only", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RequireAdmin(sessions, testCookiePrefix))

	raw, _, err := sessions.Issue(auth.Identity{ID: 1, Email: "a@example.com", Role: "admin"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: testCookiePrefix + SessionCookieBase, Value: raw})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid admin cookie without gateway: status = %d, want 200", rec.Code)
	}

	// Same route, no cookie at all.
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no cookie without gateway: status = %d, want 401", rec.Code)
	}
}
