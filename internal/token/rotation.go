package token

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Pair is a freshly issued access/refresh credential pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshFlow orchestrates refresh token rotation against a Store. All
// shared mutable state lives behind the store; the flow itself is safe for
// concurrent use.
type RefreshFlow struct {
	issuer *Issuer
	store  Store
	now    func() time.Time
}

func NewRefreshFlow(issuer *Issuer, store Store) *RefreshFlow {
	return &RefreshFlow{issuer: issuer, store: store, now: time.Now}
}

// Issue mints and persists a new lineage root for userID, typically at
// login.
func (f *RefreshFlow) Issue(ctx context.Context, userID string) (*Pair, error) {
	access, err := f.issuer.IssueAccess(userID)
	if err != nil {
		return nil, err
	}
	plain, rec, err := f.issuer.IssueRefresh(userID)
	if err != nil {
		return nil, err
	}
	if err := f.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	return &Pair{
		AccessToken:  access,
		RefreshToken: plain,
		ExpiresIn:    int64(f.issuer.AccessTTL().Seconds()),
	}, nil
}

// Rotate exchanges a presented refresh token for a new pair, retiring the
// old record. Presenting a retired token is treated as credential theft:
// every session of the owning user is revoked before the generic
// unauthorized error is returned. A lost compare-and-swap against a
// concurrent rotation of the same token gets the same treatment, so two
// simultaneous presentations yield exactly one success.
func (f *RefreshFlow) Rotate(ctx context.Context, presented string) (*Pair, error) {
	if strings.TrimSpace(presented) == "" {
		return nil, ErrUnauthorized
	}

	id := HashRefreshToken(presented)
	rec, err := f.store.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if rec.State != StateActive {
		return nil, f.revokeLineage(ctx, rec.UserID)
	}
	if rec.Expired(f.now()) {
		return nil, ErrUnauthorized
	}

	access, err := f.issuer.IssueAccess(rec.UserID)
	if err != nil {
		return nil, err
	}
	plain, successor, err := f.issuer.IssueRefresh(rec.UserID)
	if err != nil {
		return nil, err
	}

	if err := f.store.Rotate(ctx, id, successor); err != nil {
		switch {
		case errors.Is(err, ErrNotActive):
			return nil, f.revokeLineage(ctx, rec.UserID)
		case errors.Is(err, ErrNotFound):
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return &Pair{
		AccessToken:  access,
		RefreshToken: plain,
		ExpiresIn:    int64(f.issuer.AccessTTL().Seconds()),
	}, nil
}

// Revoke retires the presented token's record, as on logout. Other
// lineages of the same user are untouched. An unknown token is a no-op.
func (f *RefreshFlow) Revoke(ctx context.Context, presented string) error {
	if strings.TrimSpace(presented) == "" {
		return nil
	}
	return f.store.Revoke(ctx, HashRefreshToken(presented))
}

// RevokeAllForUser signs the user out everywhere.
func (f *RefreshFlow) RevokeAllForUser(ctx context.Context, userID string) error {
	return f.store.RevokeAllForUser(ctx, userID)
}

func (f *RefreshFlow) revokeLineage(ctx context.Context, userID string) error {
	log.Printf("[Auth] retired refresh token presented again, revoking all sessions for user %s", userID)
	if err := f.store.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke lineage: %w", err)
	}
	return ErrReuseDetected
}
