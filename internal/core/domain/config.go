package domain

import (
	"runtime"
	"time"
)

// DefaultChecksumEndpoint is the checksum distribution service queried for online scans.
const DefaultChecksumEndpoint = "https://api.wordpress.org/core/checksums/1.0/"

// Progress store backends.
const (
	ProgressStoreMemory = "memory"
	ProgressStoreFile   = "file"
)

// Log formats.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// DefaultListenAddr is the address the HTTP API binds to by default.
const DefaultListenAddr = "127.0.0.1:8787"

// Config is the resolved runtime configuration.
type Config struct {
	// Root is the directory to scan.
	Root string
	// Source selects the baseline manifest source.
	Source Source
	// Version is the release whose published checksums are used for online scans.
	Version string
	// Locale is passed to the checksum service when set.
	Locale string
	// Endpoint is the checksum service URL.
	Endpoint string
	// LocalBaseline is the local checksum file. Relative paths resolve against Root.
	LocalBaseline string
	// Algorithm is the digest used for hashing files.
	Algorithm Algorithm
	// Exclusions lists paths that are never checked.
	Exclusions ExclusionRules
	// SkipExcludedMissing stops excluded manifest entries from being reported as missing.
	SkipExcludedMissing bool
	// Workers bounds the number of files hashed concurrently.
	Workers int
	// FetchRetries is the number of extra attempts made for a failed online fetch.
	FetchRetries int
	// ProgressTTL is the lifetime of a progress record after its last write.
	ProgressTTL time.Duration
	// ProgressStore selects the progress backend.
	ProgressStore string
	// AuthToken, when set, is required to start scans.
	AuthToken string
	// Listen is the HTTP API address.
	Listen string
	// LogFormat selects pretty or JSON logs.
	LogFormat string
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Root:          ".",
		Source:        DefaultSource,
		Endpoint:      DefaultChecksumEndpoint,
		LocalBaseline: LocalBaselineFileName,
		Algorithm:     DefaultAlgorithm,
		Exclusions:    DefaultExclusionRules(),
		Workers:       runtime.NumCPU(),
		ProgressTTL:   DefaultProgressTTL,
		ProgressStore: ProgressStoreFile,
		Listen:        DefaultListenAddr,
		LogFormat:     LogFormatPretty,
	}
}
