package domain

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
)

// DefaultExcludedPrefix is the user-content directory that is never checked.
const DefaultExcludedPrefix = "wp-content/"

// ExclusionRules decides which root-relative paths are left out of a scan.
type ExclusionRules struct {
	// Prefixes are plain string prefixes matched against slash-separated relative paths.
	Prefixes []string `json:"prefixes,omitempty"`
	// Patterns are doublestar globs matched against slash-separated relative paths.
	Patterns []string `json:"patterns,omitempty"`
	// Files are exact slash-separated relative paths.
	Files []string `json:"files,omitempty"`
}

// DefaultExclusionRules excludes the user-content directory.
func DefaultExclusionRules() ExclusionRules {
	return ExclusionRules{Prefixes: []string{DefaultExcludedPrefix}}
}

// WithFiles returns a copy of r that also excludes the given relative paths.
func (r ExclusionRules) WithFiles(files ...string) ExclusionRules {
	if len(files) == 0 {
		return r
	}
	out := r
	out.Files = append(slices.Clone(r.Files), files...)
	return out
}

// Validate checks that every pattern is a well-formed glob.
func (r ExclusionRules) Validate() error {
	for _, pattern := range r.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return zerr.With(zerr.Wrap(ErrInvalidPattern, "malformed glob"), "pattern", pattern)
		}
	}
	return nil
}

// Excludes reports whether the file at rel is excluded.
func (r ExclusionRules) Excludes(rel string) bool {
	if slices.Contains(r.Files, rel) {
		return true
	}
	for _, prefix := range r.Prefixes {
		if prefix != "" && strings.HasPrefix(rel, prefix) {
			return true
		}
	}
	for _, pattern := range r.Patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether every path under the directory rel is excluded by a prefix,
// so the directory need not be read at all.
func (r ExclusionRules) ExcludesDir(rel string) bool {
	dir := rel + "/"
	for _, prefix := range r.Prefixes {
		if prefix != "" && strings.HasPrefix(dir, prefix) {
			return true
		}
	}
	return false
}
