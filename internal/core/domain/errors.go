package domain

import "go.trai.ch/zerr"

// Failure classes. Adapters wrap these as the root cause of the errors they return,
// so callers can test the class with errors.Is.
var (
	// ErrManifestFetch is returned when the baseline manifest cannot be retrieved
	// because of a transport failure or an unexpected response status.
	ErrManifestFetch = zerr.New("failed to fetch baseline manifest")

	// ErrManifestFormat is returned when a baseline manifest cannot be parsed or
	// does not have the expected shape.
	ErrManifestFormat = zerr.New("invalid baseline manifest")

	// ErrBaselineNotFound is returned when the local baseline file does not exist.
	ErrBaselineNotFound = zerr.New("baseline file not found")

	// ErrFileAccess is returned when a file under the scan root cannot be read.
	ErrFileAccess = zerr.New("failed to read file")

	// ErrUnauthorized is returned when the caller is not allowed to start a scan.
	ErrUnauthorized = zerr.New("not authorized to run a scan")
)

var (
	// ErrBaselineRead is returned when the local baseline file exists but cannot be read.
	ErrBaselineRead = zerr.New("failed to read baseline file")

	// ErrDigestLengthMismatch is returned when the manifest digests do not match the
	// configured hash algorithm.
	ErrDigestLengthMismatch = zerr.New("manifest digest length does not match hash algorithm")

	// ErrInvalidVersion is returned when the configured release version cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid release version")

	// ErrVersionRequired is returned when an online scan is requested without a version.
	ErrVersionRequired = zerr.New("release version is required for online checksums")

	// ErrInvalidAlgorithm is returned for an unsupported hash algorithm name.
	ErrInvalidAlgorithm = zerr.New("unsupported hash algorithm")

	// ErrInvalidPattern is returned when an exclusion glob pattern is malformed.
	ErrInvalidPattern = zerr.New("invalid exclusion pattern")

	// ErrInvalidSession is returned when a session identifier is malformed.
	ErrInvalidSession = zerr.New("invalid scan session")

	// ErrReportNotFound is returned when no report exists for a session.
	ErrReportNotFound = zerr.New("scan report not found")

	// ErrScanRootInvalid is returned when the scan root is missing or not a directory.
	ErrScanRootInvalid = zerr.New("scan root is not a directory")

	// ErrScanFailed is returned when the scan engine stops before classifying all files.
	ErrScanFailed = zerr.New("scan failed")

	// ErrIntegrityViolations is returned by the CLI when a scan found modified, missing,
	// or unknown files.
	ErrIntegrityViolations = zerr.New("integrity violations found")
)

var (
	// ErrConfigRead is returned when the config file cannot be read.
	ErrConfigRead = zerr.New("failed to read config file")

	// ErrConfigParse is returned when the config file is not valid YAML.
	ErrConfigParse = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")
)

var (
	// ErrStoreCreateFailed is returned when a store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreReadFailed is returned when a stored record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stored record")

	// ErrStoreUnmarshalFailed is returned when a stored record cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal stored record")

	// ErrStoreMarshalFailed is returned when a record cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal record")

	// ErrStoreWriteFailed is returned when a record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write record")
)

var (
	// ErrServerFailed is returned when the HTTP API stops with an error.
	ErrServerFailed = zerr.New("http server failed")
)
