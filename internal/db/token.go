package db

import (
	"context"
	"time"

	"github.com/gemchat/backend/internal/token"
)

// RefreshTokenStore is the Postgres implementation of token.Store. The
// rotation compare-and-swap is a conditional UPDATE inside a transaction,
// so two concurrent rotations of the same record cannot both succeed.
type RefreshTokenStore struct {
	db *Postgres
}

func NewRefreshTokenStore(db *Postgres) *RefreshTokenStore {
	return &RefreshTokenStore{db: db}
}

func (s *RefreshTokenStore) Save(ctx context.Context, rec *token.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO refresh_tokens (token_hash, user_id, created_at, expires_at, state, successor_hash)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`
	_, err := s.db.Pool.Exec(ctx, query,
		rec.ID, rec.UserID, rec.CreatedAt, rec.ExpiresAt, string(rec.State), rec.SuccessorID)
	return err
}

func (s *RefreshTokenStore) Find(ctx context.Context, id string) (*token.Record, error) {
	query := `
		SELECT token_hash, user_id, created_at, expires_at, state, COALESCE(successor_hash, '')
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	var (
		rec   token.Record
		state string
	)
	err := s.db.Pool.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.CreatedAt,
		&rec.ExpiresAt,
		&state,
		&rec.SuccessorID,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, token.ErrNotFound
		}
		return nil, err
	}
	rec.State = token.State(state)
	return &rec, nil
}

func (s *RefreshTokenStore) Rotate(ctx context.Context, id string, successor *token.Record) error {
	if err := successor.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE refresh_tokens
		SET state = $3, successor_hash = $2
		WHERE token_hash = $1 AND state = $4
	`, id, successor.ID, string(token.StateRotated), string(token.StateActive))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var state string
		err := tx.QueryRow(ctx,
			`SELECT state FROM refresh_tokens WHERE token_hash = $1`, id).Scan(&state)
		if err != nil {
			if IsNoRows(err) {
				return token.ErrNotFound
			}
			return err
		}
		return token.ErrNotActive
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (token_hash, user_id, created_at, expires_at, state)
		VALUES ($1, $2, $3, $4, $5)
	`, successor.ID, successor.UserID, successor.CreatedAt, successor.ExpiresAt, string(successor.State)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *RefreshTokenStore) Revoke(ctx context.Context, id string) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE refresh_tokens
		SET state = $2
		WHERE token_hash = $1 AND state <> $2
	`, id, string(token.StateRevoked))
	return err
}

func (s *RefreshTokenStore) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE refresh_tokens
		SET state = $2
		WHERE user_id = $1 AND state <> $2
	`, userID, string(token.StateRevoked))
	return err
}

func (s *RefreshTokenStore) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := s.db.Pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= $1`, now)
	return err
}
