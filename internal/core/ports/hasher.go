package ports

import (
	"context"

	"go.trai.ch/vigil/internal/core/domain"
)

// Hasher computes content digests.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// Hash streams the file at rel under root and returns its lowercase hex digest.
	Hash(ctx context.Context, root, rel string) (string, error)
	// Algorithm returns the digest algorithm in use.
	Algorithm() domain.Algorithm
}
