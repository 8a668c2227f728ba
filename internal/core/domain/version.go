package domain

import (
	"strings"

	"github.com/blang/semver/v4"
	"go.trai.ch/zerr"
)

// ValidateVersion checks that v is a release version such as 6.4 or 6.4.3.
func ValidateVersion(v string) error {
	if _, err := semver.ParseTolerant(strings.TrimSpace(v)); err != nil {
		return zerr.With(zerr.Wrap(ErrInvalidVersion, err.Error()), "version", v)
	}
	return nil
}
