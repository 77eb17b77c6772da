package auth

import (
	"context"
	"errors"

	"github.com/iliyamo/folio-cms/internal/model"
)

// ErrInvalidCredentials is returned for every verification failure. An
// unknown email and a wrong password are indistinguishable on purpose so
// the login endpoint cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserSource is the slice of the user repository the verifier needs.
type UserSource interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// Verifier checks an email/password pair against stored bcrypt hashes.
// It is a pure read-and-compare component with no side effects.
type Verifier struct {
	users UserSource
}

func NewVerifier(users UserSource) *Verifier { return &Verifier{users: users} }

// dummyHash is a bcrypt hash of a throwaway value. When the email is
// unknown we still run one bcrypt comparison against it so the two failure
// paths cost the same.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Verify returns the identity for a matching email/password pair, or
// ErrInvalidCredentials. Inactive accounts fail exactly like bad passwords.
func (v *Verifier) Verify(ctx context.Context, email, password string) (Identity, error) {
	u, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		VerifyPassword(dummyHash, password)
		return Identity{}, ErrInvalidCredentials
	}
	if !VerifyPassword(u.PasswordHash, password) || !u.IsActive {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		SuperAdmin: u.IsSuperAdmin,
	}, nil
}
