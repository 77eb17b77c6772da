package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/auth"
	"github.com/iliyamo/folio-cms/internal/model"
)

// Route guards re-check authentication and role requirements per endpoint.
// They are deliberately redundant with the Gateway: the gateway is the
// coarse perimeter, the guards enforce the fine-grained role requirement
// and stay effective even if the perimeter allow-list were ever
// misconfigured for a route. To that end every guard falls back to
// validating the cookie itself when the gateway left no claims behind.
// Guards observe and deny; they never mutate state.

// resolveSession returns the request's validated claims, running a full
// cookie validation if the gateway did not populate the context.
func resolveSession(c echo.Context, sessions *auth.Sessions, cookiePrefix string) *auth.SessionClaims {
	if claims := SessionFromContext(c); claims != nil {
		return claims
	}
	raw, ok := SessionCookieValue(c, cookiePrefix)
	if !ok {
		return nil
	}
	claims, err := sessions.Validate(c.Request().Context(), raw)
	if err != nil {
		return nil
	}
	c.Set(sessionContextKey, claims)
	return claims
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"error":   "Authentication required",
	})
}

// RequireAuth admits any valid session.
func RequireAuth(sessions *auth.Sessions, cookiePrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if resolveSession(c, sessions, cookiePrefix) == nil {
				return unauthenticated(c)
			}
			return next(c)
		}
	}
}

// RequireAdmin admits sessions whose role is admin or superadmin, or whose
// independent superadmin flag is set. Both signals are authoritative.
func RequireAdmin(sessions *auth.Sessions, cookiePrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := resolveSession(c, sessions, cookiePrefix)
			if claims == nil {
				return unauthenticated(c)
			}
			if !claims.IsAdminTier() {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   "Admin access required",
				})
			}
			return next(c)
		}
	}
}

// RequireSuperAdmin admits only sessions whose role is exactly superadmin.
func RequireSuperAdmin(sessions *auth.Sessions, cookiePrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := resolveSession(c, sessions, cookiePrefix)
			if claims == nil {
				return unauthenticated(c)
			}
			if claims.Role != model.RoleSuperAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   "Superadmin access required",
				})
			}
			return next(c)
		}
	}
}
