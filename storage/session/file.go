package sessionstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/elimulabs/elimu/core/session"
)

var NowFunc = time.Now // mockable

// FileStore persists the Session as a JSON file, the durable-storage analog
// of the browser's localStorage (same keys: token, userRole, userEmail,
// userName, userId, rememberMe).
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ session.Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Set writes all fields atomically: the file is staged next to its final
// location and renamed into place so readers never observe a partial write.
func (s *FileStore) Set(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "sessionstore: mkdir")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "sessionstore: marshal")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "sessionstore: write")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "sessionstore: rename")
	}
	return nil
}

// Get returns the stored Session. It never errors outward: a missing,
// unreadable or corrupt file, and a token past its exp claim, all read as
// absent.
func (s *FileStore) Get() (session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return session.Session{}, false
	}
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, false
	}
	if sess.IsZero() || sess.TokenExpired(NowFunc()) {
		return session.Session{}, false
	}
	return sess, true
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "sessionstore: remove")
	}
	return nil
}
