// Package view carries the lifecycle every page controller shares:
// Idle → Loading → {Ready, Failed}, with late fetch results dropped once the
// controller is closed.
package view

import "sync"

type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Lifecycle is embedded by controllers. All of their local view state is
// private; mutations funnel through Apply so a fetch settling after Close
// cannot touch anything.
type Lifecycle struct {
	mu     sync.Mutex
	phase  Phase
	closed bool
}

func (l *Lifecycle) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Begin moves Idle/Failed/Ready to Loading. It reports false when the
// controller is closed or already loading, in which case the caller skips
// the fetch entirely.
func (l *Lifecycle) Begin() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.phase == Loading {
		return false
	}
	l.phase = Loading
	return true
}

// Finish settles a load: Ready on nil, Failed otherwise. Closed controllers
// discard the result.
func (l *Lifecycle) Finish(err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	if err != nil {
		l.phase = Failed
	} else {
		l.phase = Ready
	}
	return true
}

// Apply runs fn under the lifecycle lock iff the controller is still
// mounted, and reports whether it ran.
func (l *Lifecycle) Apply(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	fn()
	return true
}

// Close marks the controller unmounted. In-flight fetches settle into the
// void; Close is idempotent.
func (l *Lifecycle) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *Lifecycle) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
