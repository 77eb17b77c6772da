package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/folio-cms/internal/model"
)

type memUsers struct {
	byEmail map[string]model.User
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return model.User{}, errors.New("not found")
	}
	return u, nil
}

func TestVerify(t *testing.T) {
	// Low cost keeps the test fast; the production cost comes from config.
	hash, err := HashPassword("correct horse", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	users := &memUsers{byEmail: map[string]model.User{
		"owner@example.com": {
			ID: 1, Email: "owner@example.com", Name: "Owner",
			Role: model.RoleAdmin, IsSuperAdmin: true,
			PasswordHash: hash, IsActive: true,
		},
		"gone@example.com": {
			ID: 2, Email: "gone@example.com",
			PasswordHash: hash, IsActive: false,
		},
	}}
	v := NewVerifier(users)

	t.Run("valid credentials", func(t *testing.T) {
		id, err := v.Verify(context.Background(), "owner@example.com", "correct horse")
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if id.ID != 1 || id.Role != model.RoleAdmin || !id.SuperAdmin {
			t.Errorf("Verify() identity = %+v", id)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := v.Verify(context.Background(), "owner@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Verify() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := v.Verify(context.Background(), "nobody@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Verify() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("inactive account with right password", func(t *testing.T) {
		if _, err := v.Verify(context.Background(), "gone@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Verify() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
