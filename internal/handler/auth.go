package handler

import (
	"context"  // provides context with cancellation for DB calls
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls and cookie lifetimes

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/folio-cms/internal/auth"
	"github.com/iliyamo/folio-cms/internal/config"
	"github.com/iliyamo/folio-cms/internal/middleware"
	"github.com/iliyamo/folio-cms/internal/repository"
)

// AuthHandler bundles dependencies for the session endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Verifier *auth.Verifier
	Sessions *auth.Sessions
	Revoked  *repository.RevokedTokenRepo
}

func NewAuthHandler(cfg config.Config, v *auth.Verifier, s *auth.Sessions, r *repository.RevokedTokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Verifier: v, Sessions: s, Revoked: r}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID         uint64 `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	SuperAdmin bool   `json:"superadmin"`
}

func userPartFrom(id auth.Identity) userPart {
	return userPart{ID: id.ID, Email: id.Email, Name: id.Name, Role: id.Role, SuperAdmin: id.SuperAdmin}
}

// cookieName returns the session cookie name for the current mode. Under
// HTTPS the __Secure- variant is set; the gateway accepts both names so a
// mode switch does not strand existing sessions.
func (h *AuthHandler) cookieName() string {
	name := h.Cfg.CookiePrefix + middleware.SessionCookieBase
	if h.Cfg.CookieSecure {
		return "__Secure-" + name
	}
	return name
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName(),
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	// Clear both name variants; the client may hold either.
	base := h.Cfg.CookiePrefix + middleware.SessionCookieBase
	for _, name := range []string{base, "__Secure-" + base} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.Cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// sessionClaims resolves the request's claims from the gateway context or,
// for routes outside the perimeter (the /api/auth group is public), from
// the cookie directly.
func (h *AuthHandler) sessionClaims(c echo.Context) *auth.SessionClaims {
	if claims := middleware.SessionFromContext(c); claims != nil {
		return claims
	}
	raw, ok := middleware.SessionCookieValue(c, h.Cfg.CookiePrefix)
	if !ok {
		return nil
	}
	claims, err := h.Sessions.Validate(c.Request().Context(), raw)
	if err != nil {
		return nil
	}
	return claims
}

// Login verifies credentials, mints a session token with a fresh jti and
// sets the session cookie. Wrong email and wrong password produce the same
// response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid credentials"})
	}

	token, claims, err := h.Sessions.Issue(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue session failed"})
	}
	h.setSessionCookie(c, token, claims.ExpiresAt.Time)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": userPartFrom(id)})
}

// Logout revokes the current session's jti and clears the cookie. The
// revocation entry expires with the token, so the revocation store never
// accumulates rows past their usefulness. Logout is idempotent: with no
// valid session there is nothing to revoke and the cookies are cleared
// anyway.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := h.sessionClaims(c)
	if claims != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "logout failed"})
		}
	}
	h.clearSessionCookies(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Refresh re-signs a still-valid session with a new expiry. The jti is
// kept, so a revocation issued against the original sign-in also kills
// every refreshed token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims := h.sessionClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Authentication required"})
	}
	token, next, err := h.Sessions.Refresh(claims)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "refresh failed"})
	}
	h.setSessionCookie(c, token, next.ExpiresAt.Time)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": userPartFrom(next.Identity())})
}

// Me returns the authenticated user's identity claims.
func (h *AuthHandler) Me(c echo.Context) error {
	claims := h.sessionClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Authentication required"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": userPartFrom(claims.Identity())})
}
