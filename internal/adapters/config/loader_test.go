package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/adapters/config"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))
}

func TestLoader_Load_Defaults(t *testing.T) {
	t.Setenv(config.AuthTokenEnv, "")
	os.Unsetenv(config.AuthTokenEnv) //nolint:errcheck

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	cfg, err := loader.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(), *cfg)
	assert.Equal(t, domain.SourceOnline, cfg.Source)
	assert.Equal(t, []string{"wp-content/"}, cfg.Exclusions.Prefixes)
	assert.Equal(t, 60*time.Second, cfg.ProgressTTL)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestLoader_Load_Full(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	dir := t.TempDir()
	writeConfig(t, dir, `
root: /srv/www
checksum_source: local
version: "6.4.3"
locale: de_DE
endpoint: https://checksums.example.com/core/
local_baseline: baseline/checksums.json
algorithm: sha256
exclude:
  prefixes: []
  patterns:
    - "**/*.log"
skip_excluded_missing: true
workers: 4
fetch_retries: 3
progress:
  ttl: 90s
  store: memory
auth_token: secret
listen: 0.0.0.0:9000
log_format: json
`)

	t.Setenv(config.AuthTokenEnv, "from-env")

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/www", cfg.Root)
	assert.Equal(t, domain.SourceLocal, cfg.Source)
	assert.Equal(t, "6.4.3", cfg.Version)
	assert.Equal(t, "de_DE", cfg.Locale)
	assert.Equal(t, "https://checksums.example.com/core/", cfg.Endpoint)
	assert.Equal(t, "baseline/checksums.json", cfg.LocalBaseline)
	assert.Equal(t, domain.AlgorithmSHA256, cfg.Algorithm)
	assert.Empty(t, cfg.Exclusions.Prefixes)
	assert.Equal(t, []string{"**/*.log"}, cfg.Exclusions.Patterns)
	assert.True(t, cfg.SkipExcludedMissing)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, 90*time.Second, cfg.ProgressTTL)
	assert.Equal(t, domain.ProgressStoreMemory, cfg.ProgressStore)
	assert.Equal(t, "from-env", cfg.AuthToken)
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, domain.LogFormatJSON, cfg.LogFormat)
}

func TestLoader_Parse_SanitizesSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("unknown checksum_source, using default", gomock.Any()).Times(1)

	cfg, err := config.NewLoader(log).Parse([]byte("checksum_source: ftp\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.SourceOnline, cfg.Source)
}

func TestLoader_Parse_SourceCaseInsensitive(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Parse([]byte("checksum_source: LOCAL\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocal, cfg.Source)
}

func TestLoader_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"bad yaml", "workers: [", domain.ErrConfigParse.Error()},
		{"bad algorithm", "algorithm: crc32\n", "algorithm must be one of"},
		{"too many workers", "workers: 1000\n", "workers must be at most 256"},
		{"negative retries", "fetch_retries: -1\n", "fetch_retries must be at least 0"},
		{"bad endpoint", "endpoint: not a url\n", "endpoint must be a valid URL"},
		{"bad listen", "listen: nope\n", "listen must be a host:port address"},
		{"bad log format", "log_format: xml\n", "log_format must be one of"},
		{"bad store", "progress:\n  store: redis\n", "store must be one of"},
		{"bad version", "version: banana\n", domain.ErrInvalidVersion.Error()},
		{"bad pattern", "exclude:\n  patterns: ['[a-']\n", domain.ErrInvalidPattern.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			log := mocks.NewMockLogger(ctrl)
			log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

			_, err := config.NewLoader(log).Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_Unreadable(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, domain.ConfigFileName), 0o750))

	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigRead.Error())
}
