package repository

import (
	"context"
	"database/sql"
	"time"
)

// RevokedTokenRepo persists revoked session token identifiers. A jti
// present here with an expiry in the future means "reject any session
// bearing this jti" regardless of signature validity. Rows whose expiry
// has passed are dead weight and are swept by CleanupExpired.
type RevokedTokenRepo struct{ DB *sql.DB }

func NewRevokedTokenRepo(db *sql.DB) *RevokedTokenRepo { return &RevokedTokenRepo{DB: db} }

// Revoke inserts a revocation row for jti. Inserting an already-present
// jti is a no-op, not an error, so logout can be retried safely.
func (r *RevokedTokenRepo) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO revoked_tokens (jti, expires_at, revoked_at) VALUES (?,?,UTC_TIMESTAMP())",
		jti, expiresAt.UTC())
	return err
}

// IsRevoked reports whether jti has a live revocation entry. Callers must
// treat a non-nil error as revoked: this lookup is a security control, and
// an unreachable store must cause false rejection, not silent acceptance.
func (r *RevokedTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM revoked_tokens WHERE jti=? AND expires_at > UTC_TIMESTAMP() LIMIT 1",
		jti).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CleanupExpired deletes entries whose expiry has passed. An entry with a
// future expiry is never touched, however often this runs; the predicate
// is evaluated inside the store so concurrent sweeps stay safe.
func (r *RevokedTokenRepo) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM revoked_tokens WHERE expires_at <= UTC_TIMESTAMP()")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
