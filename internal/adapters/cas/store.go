// Package cas implements the report store: one JSON document per scan session, stored
// under a content-addressed file name.
package cas

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	vfs "go.trai.ch/vigil/internal/adapters/fs"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ReportStore using a file-per-session strategy.
type Store struct {
	dir string
}

var _ ports.ReportStore = (*Store)(nil)

// NewStore creates a Store backed by the default reports directory.
func NewStore() *Store {
	return NewStoreWithPath(domain.DefaultReportsPath())
}

// NewStoreWithPath creates a Store backed by dir.
func NewStoreWithPath(dir string) *Store {
	return &Store{dir: dir}
}

// Get retrieves the result stored for session. It returns nil, nil when none exists.
func (s *Store) Get(_ context.Context, session domain.SessionID) (*domain.ScanResult, error) {
	filename := s.getFilename(session)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var result domain.ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "session", session.String())
	}

	return &result, nil
}

// Put stores result under its session, replacing any earlier report.
func (s *Store) Put(_ context.Context, result *domain.ScanResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	if err := vfs.WriteFileAtomic(s.getFilename(result.Session), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "session", result.Session.String())
	}

	return nil
}

func (s *Store) getFilename(session domain.SessionID) string {
	hash := sha256.Sum256([]byte(session))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}
