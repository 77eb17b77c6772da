package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"net/url"  // query escaping for the post-login redirect
	"strings"  // string utilities for prefix checking

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware

	"github.com/iliyamo/folio-cms/internal/auth"
)

// sessionContextKey is where the gateway stores validated claims for
// downstream guards and handlers.
const sessionContextKey = "session"

// SessionCookieBase is the cookie name without prefix; the full names are
// "<prefix>session-token" and "__Secure-<prefix>session-token".
const SessionCookieBase = "session-token"

// publicPrefixes is the allow-list of path prefixes that bypass the
// gateway entirely: home, the login page, public content pages, feeds, OG
// images, health/metrics, static assets, the auth endpoints and the public
// read API. The list is a pure union; check order does not matter.
var publicPrefixes = []string{
	"/login",
	"/resume",
	"/notes",
	"/projects",
	"/feed",
	"/og",
	"/healthz",
	"/metrics",
	"/static",
	"/api/auth",
	"/api/public",
}

// isPublicPath classifies a request against the allow-list. The root path
// is matched exactly; everything else by prefix. Settings reads are public
// (the hydration fetch has no session); settings writes go through the
// guards on their routes.
func isPublicPath(method, path string) bool {
	if path == "/" {
		return true
	}
	if path == "/api/settings" && method == http.MethodGet {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// SessionCookieValue pulls the raw session token from the request cookies.
// Both the plain and the __Secure- cookie name are accepted so sessions
// survive moving the deployment behind HTTPS.
func SessionCookieValue(c echo.Context, cookiePrefix string) (string, bool) {
	for _, name := range []string{
		cookiePrefix + SessionCookieBase,
		"__Secure-" + cookiePrefix + SessionCookieBase,
	} {
		if ck, err := c.Cookie(name); err == nil && ck.Value != "" {
			return ck.Value, true
		}
	}
	return "", false
}

// denyRequest writes the denial response for an unauthenticated request.
// API paths get a structured 401; page paths are sent to the login page
// with the original path preserved for the post-login return.
func denyRequest(c echo.Context) error {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false,
			"error":   "Authentication required",
		})
	}
	return c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(path))
}

// Gateway returns the request-interception middleware that runs before any
// route handler. Public paths pass through without token inspection. Every
// other path requires a session cookie that validates (signature, expiry,
// revocation); on success the claims are stored in the context, otherwise
// the request is denied before any handler executes. The gateway is the
// single perimeter; the per-route guards re-check on top of it.
func Gateway(sessions *auth.Sessions, cookiePrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if isPublicPath(req.Method, req.URL.Path) {
				return next(c)
			}
			raw, ok := SessionCookieValue(c, cookiePrefix)
			if !ok {
				return denyRequest(c)
			}
			claims, err := sessions.Validate(req.Context(), raw)
			if err != nil {
				// Expired and revoked sessions look identical to the
				// caller; the distinction only matters for the log line.
				return denyRequest(c)
			}
			c.Set(sessionContextKey, claims)
			return next(c)
		}
	}
}

// SessionFromContext returns the claims stored by the gateway or a guard,
// or nil when the request is unauthenticated.
func SessionFromContext(c echo.Context) *auth.SessionClaims {
	if claims, ok := c.Get(sessionContextKey).(*auth.SessionClaims); ok {
		return claims
	}
	return nil
}
