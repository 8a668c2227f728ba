package progress

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	vfs "go.trai.ch/vigil/internal/adapters/fs"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileStore keeps one JSON record per session in a directory, so a process other than
// the one running the scan can poll its progress.
type FileStore struct {
	dir   string
	clock clockwork.Clock
}

var _ ports.ProgressStore = (*FileStore)(nil)

// NewFileStore creates a FileStore writing records below dir.
func NewFileStore(dir string, clock clockwork.Clock) *FileStore {
	return &FileStore{dir: dir, clock: clock}
}

// Set atomically replaces the session's record. A non-positive ttl uses the default lifetime.
func (s *FileStore) Set(_ context.Context, session domain.SessionID, percent float64, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = domain.DefaultProgressTTL
	}

	rec := domain.ProgressRecord{
		Session:   session,
		Percent:   percent,
		ExpiresAt: s.clock.Now().Add(ttl),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := vfs.WriteFileAtomic(s.filename(session), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "session", session.String())
	}
	return nil
}

// Get returns the session's percent if a live record exists. Expired records are removed.
func (s *FileStore) Get(_ context.Context, session domain.SessionID) (float64, bool, error) {
	filename := s.filename(session)

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var rec domain.ProgressRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, false, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "session", session.String())
	}

	if rec.Expired(s.clock.Now()) {
		_ = os.Remove(filename)
		return 0, false, nil
	}
	return rec.Percent, true, nil
}

func (s *FileStore) filename(session domain.SessionID) string {
	hash := sha256.Sum256([]byte(session))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}
