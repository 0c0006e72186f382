package token

import (
	"errors"
	"fmt"
)

var (
	// ErrSigning indicates a signing or configuration fault at issuance
	// (missing secret, unsupported algorithm, signing primitive failure).
	// It is operator-visible and must not be retried automatically.
	ErrSigning = errors.New("token signing failed")

	// ErrUnauthorized is the single rejection returned for every
	// verification or rotation failure. Causes are deliberately not
	// distinguished so the error cannot be used as an oracle.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is reported by a Store when no record matches the id.
	ErrNotFound = errors.New("refresh token not found")

	// ErrNotActive is reported by Store.Rotate when the record was not in
	// the active state at the moment of the compare-and-swap.
	ErrNotActive = errors.New("refresh token not active")
)

// ErrReuseDetected marks presentation of an already-retired refresh token.
// It satisfies errors.Is(err, ErrUnauthorized) so callers surface it as a
// plain unauthorized; the lineage has already been revoked when it is
// returned.
var ErrReuseDetected = fmt.Errorf("retired refresh token reused: %w", ErrUnauthorized)
