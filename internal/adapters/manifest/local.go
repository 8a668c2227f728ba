package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/zerr"
)

// Local reads a flat {path: digest} JSON baseline from disk.
type Local struct {
	baseline string
}

// NewLocal creates a Local reading baseline. A relative baseline resolves against the
// scan root at load time.
func NewLocal(baseline string) *Local {
	if baseline == "" {
		baseline = domain.LocalBaselineFileName
	}
	return &Local{baseline: baseline}
}

// Path returns the baseline location for a scan root.
func (l *Local) Path(root string) string {
	if filepath.IsAbs(l.baseline) {
		return l.baseline
	}
	return filepath.Join(root, l.baseline)
}

// Load reads and validates the baseline for root.
func (l *Local) Load(root string) (*domain.Manifest, error) {
	path := l.Path(root)

	//nolint:gosec // the baseline location is operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrBaselineNotFound, "no baseline file"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrBaselineRead, err.Error()), "path", path)
	}

	entries, err := decodeFlat(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return domain.NewManifest(entries)
}
