package fs

import (
	"io"
	"regexp"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// VersionFile is the file, relative to the scan root, that declares the installed release.
const VersionFile = "wp-includes/version.php"

const maxVersionFileBytes = 64 << 10

var versionAssignment = regexp.MustCompile(`\$wp_version\s*=\s*['"]([^'"]+)['"]\s*;`)

// VersionDetector reads the installed release from VersionFile.
type VersionDetector struct {
	open Opener
}

var _ ports.VersionDetector = (*VersionDetector)(nil)

// NewVersionDetector creates a VersionDetector over the operating system filesystem.
func NewVersionDetector() *VersionDetector {
	return NewVersionDetectorWithOpener(OSOpener)
}

// NewVersionDetectorWithOpener creates a VersionDetector over filesystems produced by open.
func NewVersionDetectorWithOpener(open Opener) *VersionDetector {
	return &VersionDetector{open: open}
}

// Detect returns the version assigned in VersionFile under root.
func (d *VersionDetector) Detect(root string) (string, error) {
	f, err := d.open(root).Open(rooted(VersionFile))
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrVersionRequired, err.Error()), "path", VersionFile)
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(f, maxVersionFileBytes))
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrVersionRequired, err.Error()), "path", VersionFile)
	}

	m := versionAssignment.FindSubmatch(data)
	if m == nil {
		return "", zerr.With(zerr.Wrap(domain.ErrVersionRequired, "no version assignment found"), "path", VersionFile)
	}
	return string(m[1]), nil
}
