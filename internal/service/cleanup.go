package service

import (
	"context"
	"log"
	"time"

	"github.com/gemchat/backend/internal/token"
)

// TokenCleanupService periodically deletes expired refresh token records.
// Expired records are already unusable; this only keeps the table small.
type TokenCleanupService struct {
	store    token.Store
	interval time.Duration
}

func NewTokenCleanupService(store token.Store, interval time.Duration) *TokenCleanupService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenCleanupService{store: store, interval: interval}
}

// Run blocks until ctx is cancelled. Individual sweep failures are logged
// and the loop keeps going.
func (s *TokenCleanupService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.DeleteExpired(ctx, time.Now().UTC()); err != nil {
				log.Printf("[TokenCleanup] sweep failed: %v", err)
			}
		}
	}
}
