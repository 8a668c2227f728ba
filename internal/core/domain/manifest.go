package domain

import (
	"encoding/hex"
	"path"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Manifest is an immutable baseline mapping of root-relative, slash-separated file
// paths to expected hex digests. All digests in a manifest have the same length.
type Manifest struct {
	entries   map[string]string
	digestLen int
}

// NewManifest validates entries and builds a Manifest from them.
// Digests are stored lowercase. The input map is copied.
func NewManifest(entries map[string]string) (*Manifest, error) {
	m := &Manifest{entries: make(map[string]string, len(entries))}

	for p, digest := range entries {
		if err := validateManifestPath(p); err != nil {
			return nil, err
		}

		digest = strings.ToLower(digest)
		if digest == "" {
			return nil, manifestFormatError("empty digest", p)
		}
		if _, err := hex.DecodeString(digest); err != nil {
			return nil, manifestFormatError("digest is not hexadecimal", p)
		}

		switch {
		case m.digestLen == 0:
			m.digestLen = len(digest)
		case len(digest) != m.digestLen:
			err := manifestFormatError("digest length differs from other entries", p)
			return nil, zerr.With(err, "expected_length", m.digestLen)
		}

		m.entries[p] = digest
	}

	return m, nil
}

func validateManifestPath(p string) error {
	switch {
	case p == "":
		return manifestFormatError("empty path", p)
	case strings.Contains(p, `\`):
		return manifestFormatError("path is not slash separated", p)
	case strings.HasPrefix(p, "/"):
		return manifestFormatError("path is absolute", p)
	case path.Clean(p) != p:
		return manifestFormatError("path is not normalized", p)
	case p == ".." || strings.HasPrefix(p, "../"):
		return manifestFormatError("path escapes the root", p)
	}
	return nil
}

func manifestFormatError(reason, p string) error {
	return zerr.With(zerr.Wrap(ErrManifestFormat, reason), "path", p)
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Lookup returns the expected digest for a path.
func (m *Manifest) Lookup(p string) (string, bool) {
	if m == nil {
		return "", false
	}
	digest, ok := m.entries[p]
	return digest, ok
}

// Paths returns all manifest paths in ascending order.
func (m *Manifest) Paths() []string {
	if m == nil {
		return nil
	}
	paths := make([]string, 0, len(m.entries))
	for p := range m.entries {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// DigestLength returns the hex length shared by every digest, or 0 for an empty manifest.
func (m *Manifest) DigestLength() int {
	if m == nil {
		return 0
	}
	return m.digestLen
}
