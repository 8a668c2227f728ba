package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/core/domain"
)

func TestParseSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.Source
	}{
		{"local", domain.SourceLocal},
		{" LOCAL ", domain.SourceLocal},
		{"online", domain.SourceOnline},
		{"", domain.SourceOnline},
		{"ftp", domain.SourceOnline},
		{"<script>", domain.SourceOnline},
	}

	for _, tt := range tests {
		got := domain.ParseSource(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.True(t, got.Valid())
	}
	assert.False(t, domain.Source("ftp").Valid())
}

func TestParseAlgorithm(t *testing.T) {
	t.Parallel()

	a, err := domain.ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, domain.AlgorithmMD5, a)
	assert.Equal(t, 32, a.DigestLength())

	a, err = domain.ParseAlgorithm("SHA256")
	require.NoError(t, err)
	assert.Equal(t, 64, a.DigestLength())

	a, err = domain.ParseAlgorithm("xxh64")
	require.NoError(t, err)
	assert.Equal(t, 16, a.DigestLength())

	_, err = domain.ParseAlgorithm("crc32")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAlgorithm)
}

func TestExclusionRules(t *testing.T) {
	t.Parallel()

	rules := domain.DefaultExclusionRules()
	assert.True(t, rules.Excludes("wp-content/uploads/a.jpg"))
	assert.True(t, rules.Excludes("wp-content/"))
	assert.False(t, rules.Excludes("wp-content"))
	assert.False(t, rules.Excludes("wp-admin/index.php"))
	assert.False(t, rules.Excludes("x/wp-content/a.php"))

	assert.True(t, rules.ExcludesDir("wp-content"))
	assert.True(t, rules.ExcludesDir("wp-content/plugins"))
	assert.False(t, rules.ExcludesDir("wp-contentx"))
	assert.False(t, rules.ExcludesDir("wp-admin"))

	withPatterns := domain.ExclusionRules{Patterns: []string{"**/*.log", "cache/**"}}
	require.NoError(t, withPatterns.Validate())
	assert.True(t, withPatterns.Excludes("debug.log"))
	assert.True(t, withPatterns.Excludes("a/b/error.log"))
	assert.True(t, withPatterns.Excludes("cache/page/index.html"))
	assert.False(t, withPatterns.Excludes("index.php"))
	assert.False(t, withPatterns.ExcludesDir("cache"))

	base := domain.DefaultExclusionRules()
	withFiles := base.WithFiles("vigil.yaml", "checksums.json")
	assert.True(t, withFiles.Excludes("vigil.yaml"))
	assert.True(t, withFiles.Excludes("checksums.json"))
	assert.True(t, withFiles.Excludes("wp-content/a.php"))
	assert.False(t, withFiles.Excludes("sub/vigil.yaml"))
	assert.False(t, withFiles.ExcludesDir("vigil.yaml"))
	assert.Empty(t, base.Files)
	assert.Equal(t, base, base.WithFiles())

	bad := domain.ExclusionRules{Patterns: []string{"[a-"}}
	assert.ErrorContains(t, bad.Validate(), domain.ErrInvalidPattern.Error())
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, domain.Percent(0, 0), 0)
	assert.InDelta(t, 0.0, domain.Percent(0, 10), 0)
	assert.InDelta(t, 50.0, domain.Percent(5, 10), 0)
	assert.InDelta(t, 100.0, domain.Percent(10, 10), 0)
	assert.InDelta(t, 100.0, domain.Percent(11, 10), 0)
	assert.InDelta(t, 0.0, domain.Percent(-1, 10), 0)
}

func TestProgressRecord_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := domain.ProgressRecord{Percent: 40, ExpiresAt: now.Add(time.Minute)}

	assert.False(t, r.Expired(now))
	assert.True(t, r.Expired(now.Add(time.Minute)))
}

func TestSessionID(t *testing.T) {
	t.Parallel()

	id := domain.NewSessionID()
	parsed, err := domain.ParseSessionID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = domain.ParseSessionID("../../etc/passwd")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestScanResult_Normalize(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := domain.ScanResult{
		Modified:   []string{"b.php", "a.php"},
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}
	r.Normalize()

	assert.Equal(t, []string{"a.php", "b.php"}, r.Modified)
	assert.NotNil(t, r.Missing)
	assert.NotNil(t, r.Unknown)
	assert.Equal(t, 2, r.Issues())
	assert.False(t, r.Clean())
	assert.Equal(t, 2*time.Second, r.Duration())

	empty := domain.ScanResult{}
	empty.Normalize()
	assert.True(t, empty.Clean())
	assert.Zero(t, empty.Duration())
}

func TestValidateVersion(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"6.4", "6.4.3", "v5.9", " 6.5 "} {
		assert.NoError(t, domain.ValidateVersion(v), v)
	}
	for _, v := range []string{"latest", "", "six"} {
		err := domain.ValidateVersion(v)
		assert.ErrorIs(t, err, domain.ErrInvalidVersion, v)
	}
}
