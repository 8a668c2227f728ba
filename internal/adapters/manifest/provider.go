// Package manifest loads baseline manifests from the checksum service or a local file.
package manifest

import (
	"context"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider implements ports.ManifestProvider by dispatching on the requested source.
type Provider struct {
	remote *Remote
	local  *Local
	logger ports.Logger
}

var _ ports.ManifestProvider = (*Provider)(nil)

// NewProvider creates a Provider from its two sources.
func NewProvider(remote *Remote, local *Local, logger ports.Logger) *Provider {
	return &Provider{remote: remote, local: local, logger: logger}
}

// Load returns the validated manifest for req.
func (p *Provider) Load(ctx context.Context, req ports.ManifestRequest) (*domain.Manifest, error) {
	var (
		m   *domain.Manifest
		err error
	)

	switch req.Source {
	case domain.SourceLocal:
		m, err = p.local.Load(req.Root)
	default:
		if req.Version == "" {
			return nil, domain.ErrVersionRequired
		}
		m, err = p.remote.Load(ctx, req.Version)
	}
	if err != nil {
		return nil, zerr.With(err, "source", req.Source.String())
	}

	p.logger.Info("baseline manifest loaded", "source", req.Source.String(), "entries", m.Len())

	return m, nil
}
