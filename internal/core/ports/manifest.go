package ports

import (
	"context"

	"go.trai.ch/vigil/internal/core/domain"
)

// ManifestRequest selects the baseline to load.
type ManifestRequest struct {
	// Source picks the remote checksum service or the local baseline file.
	Source domain.Source
	// Version is the release whose checksums are requested. Required for online loads.
	Version string
	// Root is the scan root. Relative local baseline paths resolve against it.
	Root string
}

// ManifestProvider loads baseline manifests.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestProvider interface {
	// Load returns a validated manifest. It never returns an empty manifest without error.
	Load(ctx context.Context, req ManifestRequest) (*domain.Manifest, error)
}
