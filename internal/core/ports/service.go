package ports

import (
	"context"

	"go.trai.ch/vigil/internal/core/domain"
)

// ScanOptions overrides configured defaults for one scan. Zero values keep the default.
type ScanOptions struct {
	// Token is presented to the Authorizer.
	Token string
	// Source selects the baseline manifest source.
	Source domain.Source
	// Version is the release whose checksums are used for online scans.
	Version string
	// Root is the directory to scan.
	Root string
	// Session, when set, identifies the scan instead of a generated session.
	Session domain.SessionID
}

// ScanService is the application entry point used by the CLI and the HTTP API.
//
//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks
type ScanService interface {
	// Scan runs a scan to completion.
	Scan(ctx context.Context, opts ScanOptions) (*domain.ScanResult, error)
	// StartScan starts a scan in the background and returns its session.
	StartScan(ctx context.Context, opts ScanOptions) (domain.SessionID, error)
	// Progress returns the last reported percentage of a session.
	Progress(ctx context.Context, session domain.SessionID) (float64, bool, error)
	// Report returns the stored result of a finished session.
	Report(ctx context.Context, session domain.SessionID) (*domain.ScanResult, error)
}
