package sessionstore

import (
	"sync"

	"github.com/elimulabs/elimu/core/session"
)

// MemStore is an in-memory Store for tests and throwaway environments.
type MemStore struct {
	mu   sync.Mutex
	sess session.Session
	set  bool
}

var _ session.Store = (*MemStore)(nil)

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Set(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess, s.set = sess, true
	return nil
}

func (s *MemStore) Get() (session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.sess.IsZero() || s.sess.TokenExpired(NowFunc()) {
		return session.Session{}, false
	}
	return s.sess, true
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess, s.set = session.Session{}, false
	return nil
}
