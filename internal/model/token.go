package model

import "time"

// RevokedToken models an entry in the `revoked_tokens` table. A row here
// means "reject any session bearing this jti" until ExpiresAt has passed,
// at which point the token would have died on its own and the row is only
// kept until the next cleanup sweep.
//
// Fields:
//  JTI       – unique token identifier (primary key), minted at sign-in.
//  ExpiresAt – expiry of the original token; rows past this are garbage.
//  RevokedAt – when the token was revoked.
type RevokedToken struct {
	JTI       string    // revoked_tokens.jti
	ExpiresAt time.Time // revoked_tokens.expires_at
	RevokedAt time.Time // revoked_tokens.revoked_at
}
