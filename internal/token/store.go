package token

import (
	"context"
	"time"
)

// Store is the durable record of issued refresh tokens. Implementations
// must serialize state transitions per record: Rotate performs a
// compare-and-swap so that of two concurrent rotations of one id exactly
// one succeeds and the other observes ErrNotActive.
type Store interface {
	// Save persists a new record. The record must validate.
	Save(ctx context.Context, rec *Record) error

	// Find returns the record for id in any state, or ErrNotFound.
	// Callers decide how non-active states are handled; the distinction
	// must never leak past the auth boundary.
	Find(ctx context.Context, id string) (*Record, error)

	// Rotate atomically marks id Rotated with a pointer to the successor
	// and persists the successor as Active. Returns ErrNotFound when id is
	// absent and ErrNotActive when id was not active at swap time.
	Rotate(ctx context.Context, id string, successor *Record) error

	// Revoke marks id Revoked. Revoking an absent or already-retired
	// record is not an error.
	Revoke(ctx context.Context, id string) error

	// RevokeAllForUser revokes every non-revoked record owned by userID.
	RevokeAllForUser(ctx context.Context, userID string) error

	// DeleteExpired removes records whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) error
}
