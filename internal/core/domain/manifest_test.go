package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/core/domain"
)

func TestNewManifest(t *testing.T) {
	t.Parallel()

	m, err := domain.NewManifest(map[string]string{
		"wp-login.php":            "5D41402ABC4B2A76B9719D911017C592",
		"wp-admin/index.php":      "d41d8cd98f00b204e9800998ecf8427e",
		"wp-includes/version.php": "b1946ac92492d2347c6235b4d2611184",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 32, m.DigestLength())
	assert.Equal(t, []string{"wp-admin/index.php", "wp-includes/version.php", "wp-login.php"}, m.Paths())

	digest, ok := m.Lookup("wp-login.php")
	require.True(t, ok)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", digest)

	_, ok = m.Lookup("missing.php")
	assert.False(t, ok)
}

func TestNewManifest_Empty(t *testing.T) {
	t.Parallel()

	m, err := domain.NewManifest(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.DigestLength())
	assert.Empty(t, m.Paths())
}

func TestNewManifest_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries map[string]string
		reason  string
	}{
		{"empty path", map[string]string{"": "d41d8cd98f00b204e9800998ecf8427e"}, "empty path"},
		{"absolute path", map[string]string{"/etc/passwd": "d41d8cd98f00b204e9800998ecf8427e"}, "path is absolute"},
		{"backslash", map[string]string{`wp-admin\index.php`: "d41d8cd98f00b204e9800998ecf8427e"}, "not slash separated"},
		{"unclean", map[string]string{"wp-admin//index.php": "d41d8cd98f00b204e9800998ecf8427e"}, "not normalized"},
		{"escape", map[string]string{"../wp-config.php": "d41d8cd98f00b204e9800998ecf8427e"}, "escapes the root"},
		{"empty digest", map[string]string{"a.php": ""}, "empty digest"},
		{"not hex", map[string]string{"a.php": "zz41d8cd98f00b204e9800998ecf8427e"}, "not hexadecimal"},
		{
			"mixed lengths",
			map[string]string{
				"a.php": "d41d8cd98f00b204e9800998ecf8427e",
				"b.php": "d41d8cd98f00b204",
			},
			"digest length differs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewManifest(tt.entries)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.reason)
			assert.ErrorIs(t, err, domain.ErrManifestFormat)
		})
	}
}

func TestManifest_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *domain.Manifest
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Paths())
	_, ok := m.Lookup("a")
	assert.False(t, ok)
}
