package token

import (
	"errors"
	"time"
)

// State is the lifecycle state of a refresh token record.
type State string

const (
	StateActive  State = "active"
	StateRotated State = "rotated"
	StateRevoked State = "revoked"
)

// Record is the persisted form of a refresh token. ID is the SHA-256 hash
// of the opaque token held by the client; the plaintext is never stored.
// A Rotated record keeps the id of its successor so replayed presentations
// of a retired token can be traced through the lineage.
type Record struct {
	ID          string
	UserID      string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	State       State
	SuccessorID string
}

// Validate checks the record invariants before it is handed to a store.
func (r *Record) Validate() error {
	if r.ID == "" {
		return errors.New("refresh record: empty id")
	}
	if r.UserID == "" {
		return errors.New("refresh record: empty user id")
	}
	if !r.ExpiresAt.After(r.CreatedAt) {
		return errors.New("refresh record: expiry not after creation")
	}
	switch r.State {
	case StateActive, StateRotated, StateRevoked:
	default:
		return errors.New("refresh record: unknown state")
	}
	return nil
}

// Expired reports whether the record is past its expiry timestamp.
// Expiry is independent of State: an Active record past ExpiresAt is
// unusable even though its state field still reads active.
func (r *Record) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
