package nav

import (
	"sync"

	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/session"
)

// Navigator drives route transitions. The guard runs only at transition
// points (login, logout, direct entry), never on render.
type Navigator struct {
	store session.Store
	log   core.Logger

	mu       sync.Mutex
	current  string
	watchers []func(path string)
}

func NewNavigator(store session.Store, logger core.Logger) *Navigator {
	return &Navigator{store: store, log: logger, current: PathRoot}
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Watch registers a callback invoked after every completed transition; the
// chat overlay uses it to re-evaluate its visibility per navigation.
func (n *Navigator) Watch(fn func(path string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.watchers = append(n.watchers, fn)
}

// Navigate moves to path if the guard allows it and returns the path
// actually landed on. A denied transition redirects to login when no session
// exists, or to the role's own landing page otherwise.
func (n *Navigator) Navigate(path string) string {
	sess, _ := n.store.Get()
	dest := path
	if !CanAccess(path, sess) {
		if sess.IsZero() {
			dest = PathLogin
		} else {
			dest = ResolveLanding(sess.Role)
		}
		n.log.Debug("nav: access denied", map[string]interface{}{"path": path, "redirect": dest})
	}

	n.mu.Lock()
	n.current = dest
	watchers := make([]func(string), len(n.watchers))
	copy(watchers, n.watchers)
	n.mu.Unlock()

	for _, fn := range watchers {
		fn(dest)
	}
	return dest
}
