package ports

// VersionDetector finds the release version installed under a scan root.
//
//go:generate mockgen -source=version.go -destination=mocks/mock_version.go -package=mocks
type VersionDetector interface {
	// Detect returns the installed version. It fails with domain.ErrVersionRequired when
	// no version can be found.
	Detect(root string) (string, error)
}
