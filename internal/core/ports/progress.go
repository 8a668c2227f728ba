package ports

import (
	"context"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
)

// ProgressStore holds the latest completion percentage per scan session.
//
//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type ProgressStore interface {
	// Set overwrites the session's progress. The record expires after ttl.
	Set(ctx context.Context, session domain.SessionID, percent float64, ttl time.Duration) error
	// Get returns the session's progress. ok is false when no live record exists.
	Get(ctx context.Context, session domain.SessionID) (percent float64, ok bool, err error)
}
