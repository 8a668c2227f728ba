package ports

import (
	"context"

	"go.trai.ch/vigil/internal/core/domain"
)

// ReportStore persists finished scan results.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportStore interface {
	// Get returns the result stored for a session, or nil if none exists.
	Get(ctx context.Context, session domain.SessionID) (*domain.ScanResult, error)
	// Put stores a result under its session.
	Put(ctx context.Context, result *domain.ScanResult) error
}
