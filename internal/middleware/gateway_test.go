package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/auth"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

const testCookiePrefix = "folio_"

func newTestEcho(sessions *auth.Sessions) *echo.Echo {
	e := echo.New()
	e.Use(Gateway(sessions, testCookiePrefix))
	ok := func(c echo.Context) error {
		claims := SessionFromContext(c)
		if claims != nil {
			return c.String(http.StatusOK, claims.Email)
		}
		return c.String(http.StatusOK, "anonymous")
	}
	e.GET("/", ok)
	e.GET("/notes/hello", ok)
	e.GET("/api/settings", ok)
	e.PUT("/api/settings", ok)
	e.GET("/api/admin/notes", ok)
	e.GET("/dashboard", ok)
	return e
}

func issueCookie(t *testing.T, sessions *auth.Sessions, name string) *http.Cookie {
	t.Helper()
	raw, _, err := sessions.Issue(auth.Identity{ID: 1, Email: "owner@example.com", Role: "admin"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return &http.Cookie{Name: name, Value: raw}
}

func TestGatewayPublicPaths(t *testing.T) {
	sessions := auth.NewSessions("secret", 30, &stubRevocations{revoked: map[string]bool{}})
	e := newTestEcho(sessions)

	for _, path := range []string{"/", "/notes/hello", "/api/settings"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s without session: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestGatewayDeniesAPIWithJSON(t *testing.T) {
	sessions := auth.NewSessions("secret", 30, &stubRevocations{revoked: map[string]bool{}})
	e := newTestEcho(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/notes", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if body.Success || body.Error != "Authentication required" {
		t.Errorf("body = %+v", body)
	}
}

func TestGatewayRedirectsPages(t *testing.T) {
	sessions := auth.NewSessions("secret", 30, &stubRevocations{revoked: map[string]bool{}})
	e := newTestEcho(sessions)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?redirect=%2Fdashboard" {
		t.Errorf("Location = %q, want /login?redirect=%%2Fdashboard", loc)
	}
}

func TestGatewaySettingsWriteIsProtected(t *testing.T) {
	sessions := auth.NewSessions("secret", 30, &stubRevocations{revoked: map[string]bool{}})
	e := newTestEcho(sessions)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("PUT /api/settings without session: status = %d, want 401", rec.Code)
	}
}

func TestGatewayAcceptsValidCookie(t *testing.T) {
	sessions := auth.NewSessions("secret", 30, &stubRevocations{revoked: map[string]bool{}})
	e := newTestEcho(sessions)

	for _, name := range []string{
		testCookiePrefix + SessionCookieBase,
		"__Secure-" + testCookiePrefix + SessionCookieBase,
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/notes", nil)
		req.AddCookie(issueCookie(t, sessions, name))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("cookie %q: status = %d, want 200", name, rec.Code)
		}
		if got := rec.Body.String(); got != "owner@example.com" {
			t.Errorf("cookie %q: context claims not populated, handler saw %q", name, got)
		}
	}
}

func TestGatewayDeniesRevokedSession(t *testing.T) {
	store := &stubRevocations{revoked: map[string]bool{}}
	sessions := auth.NewSessions("secret", 30, store)
	e := newTestEcho(sessions)

	raw, claims, err := sessions.Issue(auth.Identity{ID: 1, Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	store.revoked[claims.ID] = true

	req := httptest.NewRequest(http.MethodGet, "/api/admin/notes", nil)
	req.AddCookie(&http.Cookie{Name: testCookiePrefix + SessionCookieBase, Value: raw})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("revoked session: status = %d, want 401", rec.Code)
	}
}

func TestGatewayFailsClosedOnStoreOutage(t *testing.T) {
	store := &stubRevocations{revoked: map[string]bool{}}
	sessions := auth.NewSessions("secret", 30, store)
	e := newTestEcho(sessions)

	cookie := issueCookie(t, sessions, testCookiePrefix+SessionCookieBase)
	store.err = context.DeadlineExceeded

	req := httptest.NewRequest(http.MethodGet, "/api/admin/notes", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("store outage: status = %d, want 401", rec.Code)
	}
}

func TestIsPublicPath(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodGet, "/", true},
		{http.MethodGet, "/login", true},
		{http.MethodGet, "/notes/some-slug", true},
		{http.MethodGet, "/feed/rss.xml", true},
		{http.MethodGet, "/api/auth/login", true},
		{http.MethodGet, "/api/public/notes", true},
		{http.MethodGet, "/api/settings", true},
		{http.MethodPut, "/api/settings", false},
		{http.MethodPost, "/api/settings/reset", false},
		{http.MethodGet, "/api/admin/notes", false},
		{http.MethodGet, "/dashboard", false},
	}
	for _, tt := range tests {
		if got := isPublicPath(tt.method, tt.path); got != tt.want {
			t.Errorf("isPublicPath(%s %s) = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
}
