package auth // package auth implements the session token layer: issuing, refreshing and validating revocable JWTs

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
	"github.com/google/uuid"       // uuid mints the unique token identifier (jti)
)

// Sentinel errors returned by Validate. Expired and revoked tokens are
// reported separately for logging, but callers must treat every non-nil
// error the same way: the request is unauthenticated.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// Identity is the verified account information embedded into session tokens
// and trusted for the remainder of a request once validation passes.
type Identity struct {
	ID         uint64 `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	SuperAdmin bool   `json:"superadmin"`
}

// SessionClaims is the JWT payload of a session token. The embedded
// RegisteredClaims carry the subject (user id), the jti, and the
// issued-at/expiry timestamps; the rest are identity claims.
type SessionClaims struct {
	UserID     uint64 `json:"uid"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	SuperAdmin bool   `json:"superadmin"`
	jwt.RegisteredClaims
}

// Identity extracts the identity claims into a plain struct.
func (c *SessionClaims) Identity() Identity {
	return Identity{ID: c.UserID, Email: c.Email, Name: c.Name, Role: c.Role, SuperAdmin: c.SuperAdmin}
}

// IsAdminTier reports whether the session may use the admin panel: role
// admin or superadmin, or the independent superadmin flag. Both signals
// are authoritative on their own.
func (c *SessionClaims) IsAdminTier() bool {
	return c.Role == "admin" || c.Role == "superadmin" || c.SuperAdmin
}

// RevocationChecker is the part of the revocation store the validator
// needs. Implemented by repository.RevokedTokenRepo.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Sessions issues and validates session tokens. One instance is shared by
// the login handler, the authorization gateway and the route guards, so the
// same secret is guaranteed on both the signing and the verifying side.
type Sessions struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationChecker
}

func NewSessions(secret string, ttlMin int, revoked RevocationChecker) *Sessions {
	return &Sessions{
		secret:  []byte(secret),
		ttl:     time.Duration(ttlMin) * time.Minute,
		revoked: revoked,
	}
}

// Issue mints a signed HS256 session token for a verified identity. Every
// call generates a fresh jti; the jti identifies the login session for its
// whole lifetime and is the key the revocation store operates on.
func (s *Sessions) Issue(id Identity) (string, *SessionClaims, error) {
	now := time.Now().UTC()
	claims := &SessionClaims{
		UserID:     id.ID,
		Email:      id.Email,
		Name:       id.Name,
		Role:       id.Role,
		SuperAdmin: id.SuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Refresh re-signs the claims of a still-valid session with a new expiry.
// The jti is deliberately NOT regenerated: the revocation contract pins a
// login session to the jti minted at sign-in, so a refreshed token must die
// with the original when that jti is revoked.
func (s *Sessions) Refresh(claims *SessionClaims) (string, *SessionClaims, error) {
	now := time.Now().UTC()
	next := *claims
	next.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	next.IssuedAt = jwt.NewNumericDate(now)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &next).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, &next, nil
}

// Validate checks a raw token and returns its claims when the session is
// good. The checks run in a fixed order: signature and expiry first, then
// the revocation lookup. The revocation check runs on EVERY validation
// because a token can be revoked at any point after issuance. A failing
// revocation lookup rejects the token (fail closed): a store outage must
// produce false rejections, never false acceptance.
func (s *Sessions) Validate(ctx context.Context, raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, ErrTokenRevoked
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}
