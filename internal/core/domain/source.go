package domain

import "strings"

// Source selects where the baseline manifest comes from.
type Source string

const (
	// SourceOnline fetches checksums from the remote checksum service.
	SourceOnline Source = "online"
	// SourceLocal reads checksums from a local baseline file.
	SourceLocal Source = "local"
)

// DefaultSource is used when no source is configured.
const DefaultSource = SourceOnline

// ParseSource sanitizes a configured source name. Unknown values fall back to
// DefaultSource, so the returned Source is always valid.
func ParseSource(s string) Source {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceLocal:
		return SourceLocal
	case SourceOnline:
		return SourceOnline
	default:
		return DefaultSource
	}
}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	return s == SourceLocal || s == SourceOnline
}

func (s Source) String() string {
	return string(s)
}
