package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates access tokens. Like Issuer it holds no mutable state
// and is safe for concurrent use.
type Verifier struct {
	cfg Config
	now func() time.Time
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &Verifier{cfg: cfg, now: time.Now}, nil
}

// Verify checks the token signature and expiry and returns the claims.
// Every rejection (bad signature, expired, malformed, wrong algorithm)
// comes back as ErrUnauthorized with no further detail. The signature is
// checked before the time claims, and only the configured algorithm is
// accepted.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	method, err := signingMethod(v.cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != method.Alg() {
				return nil, ErrUnauthorized
			}
			return v.cfg.Secret, nil
		},
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// DecodeUnsafe decodes a token WITHOUT verifying its signature. The result
// must never feed an access-control or identity decision; it exists so
// rejected tokens can be inspected in logs. It errors only when the input
// is structurally malformed.
func DecodeUnsafe(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	return claims, nil
}
