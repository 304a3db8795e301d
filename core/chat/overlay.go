// Package chat implements the globally-mounted AI assistant overlay. The
// widget lives outside any page: it is route-aware (hidden on the public
// auth screens), hidden whenever no session exists, and keeps its own
// lazy-loaded history independent of the active page.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/nav"
	"github.com/elimulabs/elimu/core/session"
)

// Assistant modes.
const (
	ModeInternal = "internal" // course-grounded answers
	ModeExternal = "external" // general knowledge
)

// Widget states.
type State int

const (
	Closed State = iota
	OpenLoading
	OpenReady
)

// Message is one chat bubble. User messages carry Message; assistant
// replies carry Response. Ordering is append-only by arrival.
type Message struct {
	LocalID   string `json:"-"` // stable list key for locally-appended rows
	ID        int    `json:"id,omitempty"`
	Role      string `json:"role"` // user | ai
	Message   string `json:"message,omitempty"`
	Response  string `json:"response,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Synthetic assistant replies appended in place of a real one; the user's
// own message is never rolled back.
const (
	errReplyHTTP    = "Error: Could not get response."
	errReplyNetwork = "Error: Network issue."
)

var NowFunc = time.Now // mockable

// Overlay is the chat widget's controller.
type Overlay struct {
	gw    *api.Client
	store session.Store
	log   core.Logger

	mu            sync.Mutex
	state         State
	mode          string
	path          string
	messages      []Message
	historyLoaded bool
	sending       bool
}

// NewOverlay mounts the overlay and registers it with the navigator so
// visibility is re-evaluated once per navigation, not ad hoc per render.
func NewOverlay(gw *api.Client, store session.Store, navigator *nav.Navigator, logger core.Logger, mode string) *Overlay {
	if mode == "" {
		mode = ModeInternal
	}
	o := &Overlay{gw: gw, store: store, log: logger, mode: mode, path: navigator.Current()}
	navigator.Watch(o.routeChanged)
	return o
}

func (o *Overlay) routeChanged(path string) {
	o.mu.Lock()
	o.path = path
	visible := o.visibleLocked()
	if !visible {
		o.state = Closed
	}
	o.mu.Unlock()
}

// Visible reports whether the widget is mounted at all: never on the public
// allowlist routes, and never without a session token, regardless of route.
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visibleLocked()
}

func (o *Overlay) visibleLocked() bool {
	if nav.IsPublic(o.path) {
		return false
	}
	_, ok := o.store.Get()
	return ok
}

func (o *Overlay) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Overlay) Mode() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// SetMode switches between course-grounded and general answers.
func (o *Overlay) SetMode(mode string) {
	if mode != ModeInternal && mode != ModeExternal {
		return
	}
	o.mu.Lock()
	o.mode = mode
	o.mu.Unlock()
}

func (o *Overlay) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.messages...)
}

// Open shows the widget. History is fetched lazily the first time it opens
// in a session, not on every open; a failed history fetch is logged and the
// widget opens empty.
func (o *Overlay) Open(ctx context.Context) {
	o.mu.Lock()
	if !o.visibleLocked() || o.state != Closed {
		o.mu.Unlock()
		return
	}
	needHistory := !o.historyLoaded
	if needHistory {
		o.state = OpenLoading
	} else {
		o.state = OpenReady
	}
	o.mu.Unlock()

	if !needHistory {
		return
	}

	var history []Message
	err := o.gw.Get(ctx, "/chat/history", &history)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != OpenLoading {
		return // closed (or hidden by navigation) while loading
	}
	if err != nil {
		o.log.Error("chat: history fetch failed", err)
	} else {
		for i := range history {
			history[i].LocalID = uuid.New().String()
		}
		o.messages = append(history, o.messages...)
		o.historyLoaded = true
	}
	o.state = OpenReady
}

// Hide closes the widget; messages are kept for the next open.
func (o *Overlay) Hide() {
	o.mu.Lock()
	o.state = Closed
	o.mu.Unlock()
}

// Send appends the user's message immediately (optimistic), then asks the
// assistant. On success the reply is appended; on failure a synthetic error
// reply is appended instead. No retry, no rollback.
func (o *Overlay) Send(ctx context.Context, text string) {
	text = core.CleanString(text)
	if text == "" {
		return
	}

	o.mu.Lock()
	if !o.visibleLocked() || o.sending {
		o.mu.Unlock()
		return
	}
	o.sending = true
	mode := o.mode
	o.messages = append(o.messages, Message{
		LocalID:   uuid.New().String(),
		Role:      "user",
		Message:   text,
		Timestamp: NowFunc().UTC().Format(time.RFC3339),
	})
	o.mu.Unlock()

	var reply struct {
		Response string `json:"response"`
	}
	err := o.gw.Post(ctx, "/chat/message", map[string]string{"message": text, "mode": mode}, &reply)

	response := reply.Response
	if err != nil {
		o.log.Warn("chat: send failed", err)
		if api.IsNetwork(err) {
			response = errReplyNetwork
		} else {
			response = errReplyHTTP
		}
	}

	o.mu.Lock()
	o.messages = append(o.messages, Message{
		LocalID:   uuid.New().String(),
		Role:      "ai",
		Response:  response,
		Timestamp: NowFunc().UTC().Format(time.RFC3339),
	})
	o.sending = false
	o.mu.Unlock()
}
