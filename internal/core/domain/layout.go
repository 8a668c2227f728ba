package domain

import "path/filepath"

const (
	// VigilDirName is the name of the internal state directory.
	VigilDirName = ".vigil"

	// ReportsDirName is the name of the scan report store directory.
	ReportsDirName = "reports"

	// ProgressDirName is the name of the file-backed progress store directory.
	ProgressDirName = "progress"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vigil.yaml"

	// LocalBaselineFileName is the default name of the local checksum file, resolved
	// relative to the scan root.
	LocalBaselineFileName = "checksums.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultVigilPath returns the default root directory for vigil state.
func DefaultVigilPath() string {
	return VigilDirName
}

// DefaultReportsPath returns the default path for stored scan reports.
// It joins .vigil and reports.
func DefaultReportsPath() string {
	return filepath.Join(VigilDirName, ReportsDirName)
}

// DefaultProgressPath returns the default path for file-backed progress records.
// It joins .vigil and progress.
func DefaultProgressPath() string {
	return filepath.Join(VigilDirName, ProgressDirName)
}
