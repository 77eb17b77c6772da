package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// memRevocations is an in-memory stand-in for the revocation store.
type memRevocations struct {
	revoked map[string]time.Time
	err     error // non-nil simulates a store outage
}

func newMemRevocations() *memRevocations {
	return &memRevocations{revoked: map[string]time.Time{}}
}

func (m *memRevocations) Revoke(jti string, expiresAt time.Time) {
	if _, ok := m.revoked[jti]; ok {
		return // idempotent, like INSERT IGNORE
	}
	m.revoked[jti] = expiresAt
}

func (m *memRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	exp, ok := m.revoked[jti]
	return ok && exp.After(time.Now().UTC()), nil
}

func testIdentity() Identity {
	return Identity{ID: 7, Email: "owner@example.com", Name: "Owner", Role: "admin"}
}

func TestIssueAndValidate(t *testing.T) {
	store := newMemRevocations()
	s := NewSessions("test-secret", 30, store)

	raw, claims, err := s.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if claims.ID == "" {
		t.Fatal("Issue() minted no jti")
	}

	got, err := s.Validate(context.Background(), raw)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.UserID != 7 || got.Email != "owner@example.com" || got.Role != "admin" {
		t.Errorf("Validate() claims = %+v, want issued identity", got.Identity())
	}
	if got.ID != claims.ID {
		t.Errorf("Validate() jti = %q, want %q", got.ID, claims.ID)
	}
}

func TestIssueMintsFreshJTI(t *testing.T) {
	s := NewSessions("test-secret", 30, newMemRevocations())
	_, a, _ := s.Issue(testIdentity())
	_, b, _ := s.Issue(testIdentity())
	if a.ID == b.ID {
		t.Errorf("two sign-ins shared jti %q", a.ID)
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	s := NewSessions("test-secret", 30, newMemRevocations())
	raw, _, _ := s.Issue(testIdentity())

	// Flip a character in the payload segment.
	parts := strings.Split(raw, ".")
	body := []byte(parts[1])
	if body[3] == 'A' {
		body[3] = 'B'
	} else {
		body[3] = 'A'
	}
	parts[1] = string(body)
	tampered := strings.Join(parts, ".")

	if _, err := s.Validate(context.Background(), tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(tampered) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewSessions("secret-a", 30, newMemRevocations())
	verifier := NewSessions("secret-b", 30, newMemRevocations())
	raw, _, _ := issuer.Issue(testIdentity())
	if _, err := verifier.Validate(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(foreign signature) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	s := NewSessions("test-secret", -1, newMemRevocations()) // already expired at issue
	raw, _, _ := s.Issue(testIdentity())
	if _, err := s.Validate(context.Background(), raw); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Validate(expired) error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateRejectsRevokedToken(t *testing.T) {
	store := newMemRevocations()
	s := NewSessions("test-secret", 30, store)
	raw, claims, _ := s.Issue(testIdentity())

	store.Revoke(claims.ID, claims.ExpiresAt.Time)

	if _, err := s.Validate(context.Background(), raw); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Validate(revoked) error = %v, want ErrTokenRevoked", err)
	}
	// Revoking twice changes nothing.
	store.Revoke(claims.ID, claims.ExpiresAt.Time)
	if _, err := s.Validate(context.Background(), raw); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Validate(revoked twice) error = %v, want ErrTokenRevoked", err)
	}
}

func TestValidateFailsClosedOnStoreError(t *testing.T) {
	store := newMemRevocations()
	s := NewSessions("test-secret", 30, store)
	raw, _, _ := s.Issue(testIdentity())

	store.err = errors.New("connection refused")
	if _, err := s.Validate(context.Background(), raw); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Validate() with failing store error = %v, want ErrTokenRevoked", err)
	}

	// Store recovers, the token is good again.
	store.err = nil
	if _, err := s.Validate(context.Background(), raw); err != nil {
		t.Errorf("Validate() after store recovery error = %v", err)
	}
}

func TestRefreshKeepsJTI(t *testing.T) {
	store := newMemRevocations()
	s := NewSessions("test-secret", 30, store)
	_, claims, _ := s.Issue(testIdentity())

	rawNext, next, err := s.Refresh(claims)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if next.ID != claims.ID {
		t.Fatalf("Refresh() jti = %q, want original %q", next.ID, claims.ID)
	}
	if !next.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Error("Refresh() did not extend expiry")
	}

	// Revoking the original jti kills the refreshed token too.
	store.Revoke(claims.ID, next.ExpiresAt.Time)
	if _, err := s.Validate(context.Background(), rawNext); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Validate(refreshed after revoke) error = %v, want ErrTokenRevoked", err)
	}
}

// Sign-in, use, sign-out, replay: the replayed cookie must be dead.
func TestLoginLogoutReuseScenario(t *testing.T) {
	store := newMemRevocations()
	s := NewSessions("test-secret", 30, store)

	raw, claims, _ := s.Issue(testIdentity())
	if _, err := s.Validate(context.Background(), raw); err != nil {
		t.Fatalf("session unusable right after sign-in: %v", err)
	}

	store.Revoke(claims.ID, claims.ExpiresAt.Time) // logout

	if _, err := s.Validate(context.Background(), raw); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("replayed cookie after logout: error = %v, want ErrTokenRevoked", err)
	}

	// A new sign-in is unaffected: different jti.
	raw2, claims2, _ := s.Issue(testIdentity())
	if claims2.ID == claims.ID {
		t.Fatal("new sign-in reused revoked jti")
	}
	if _, err := s.Validate(context.Background(), raw2); err != nil {
		t.Errorf("fresh session after logout: error = %v", err)
	}
}

func TestIsAdminTier(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		super bool
		want  bool
	}{
		{"plain user", "user", false, false},
		{"admin role", "admin", false, true},
		{"superadmin role", "superadmin", false, true},
		{"flag only", "user", true, true},
		{"empty role", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &SessionClaims{Role: tt.role, SuperAdmin: tt.super}
			if got := c.IsAdminTier(); got != tt.want {
				t.Errorf("IsAdminTier() = %v, want %v", got, tt.want)
			}
		})
	}
}
