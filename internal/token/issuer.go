package token

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultAccessTTL is the access token lifetime when none is configured.
	DefaultAccessTTL = 24 * time.Hour
	// RefreshTTL is the fixed refresh token lifetime.
	RefreshTTL = 7 * 24 * time.Hour
)

// Algorithm names a supported symmetric signing scheme.
type Algorithm string

const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"
)

// Config carries the signing material for issuing and verifying access
// tokens. It is constructed once from process configuration and passed by
// reference; nothing in this package reads the environment.
type Config struct {
	Secret    []byte
	Algorithm Algorithm     // default HS256
	AccessTTL time.Duration // default DefaultAccessTTL
}

func (c *Config) normalize() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("%w: empty secret", ErrSigning)
	}
	if c.Algorithm == "" {
		c.Algorithm = HS256
	}
	if _, err := signingMethod(c.Algorithm); err != nil {
		return err
	}
	if c.AccessTTL <= 0 {
		c.AccessTTL = DefaultAccessTTL
	}
	return nil
}

func signingMethod(alg Algorithm) (jwt.SigningMethod, error) {
	switch alg {
	case HS256:
		return jwt.SigningMethodHS256, nil
	case HS384:
		return jwt.SigningMethodHS384, nil
	case HS512:
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrSigning, alg)
	}
}

// Claims are the signed contents of an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer mints access tokens and refresh token records. It is a pure
// function of its config plus the clock and randomness source, so a single
// instance is safe under unlimited concurrency.
type Issuer struct {
	cfg Config
	now func() time.Time
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg, now: time.Now}, nil
}

// AccessTTL returns the configured access token lifetime.
func (i *Issuer) AccessTTL() time.Duration {
	return i.cfg.AccessTTL
}

// IssueAccess signs a compact access token for subject with
// exp = iat + AccessTTL.
func (i *Issuer) IssueAccess(subject string) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.AccessTTL)),
		},
	}

	method, err := signingMethod(i.cfg.Algorithm)
	if err != nil {
		return "", err
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString(i.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// IssueRefresh creates a fresh Active record for userID expiring in
// RefreshTTL. The returned plain token is what the client holds; the
// record is keyed by its hash. Persistence is the caller's responsibility.
func (i *Issuer) IssueRefresh(userID string) (string, *Record, error) {
	plain := uuid.NewString()
	now := i.now().UTC()
	rec := &Record{
		ID:        HashRefreshToken(plain),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(RefreshTTL),
		State:     StateActive,
	}
	if err := rec.Validate(); err != nil {
		return "", nil, err
	}
	return plain, rec, nil
}

// HashRefreshToken maps a plain refresh token to its record id.
func HashRefreshToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
