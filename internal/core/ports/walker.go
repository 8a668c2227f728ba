package ports

import (
	"context"
	"iter"

	"go.trai.ch/vigil/internal/core/domain"
)

// Walker enumerates files under a scan root.
//
//go:generate mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type Walker interface {
	// Walk yields the slash-separated, root-relative paths of regular files under root
	// that are not excluded by rules. Entries that cannot be read are skipped.
	Walk(ctx context.Context, root string, rules domain.ExclusionRules) iter.Seq[string]
	// Exists reports whether anything exists at rel under root.
	Exists(root, rel string) bool
}
