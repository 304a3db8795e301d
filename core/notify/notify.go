// Package notify is the single notification service behind the header
// dropdown. It replaces the per-page ad hoc notification arrays with the
// real activity feed, picking the endpoint by the session's role.
package notify

import (
	"context"
	"sync"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/admin"
	"github.com/elimulabs/elimu/core/session"
)

// Notification is one dropdown row, derived from an activity event.
type Notification struct {
	ID        int
	Title     string
	Detail    string
	CreatedAt string
}

// Service fetches the activity feed appropriate to the current role.
type Service struct {
	gw    *api.Client
	store session.Store
	log   core.Logger
}

func NewService(gw *api.Client, store session.Store, logger core.Logger) *Service {
	return &Service{gw: gw, store: store, log: logger}
}

// Fetch pulls the latest activity events for the session's role. Admins see
// the platform feed, trainers their course feed, everyone else their own
// account activity.
func (s *Service) Fetch(ctx context.Context) ([]Notification, error) {
	sess, ok := s.store.Get()
	if !ok {
		return nil, nil
	}

	var path string
	switch {
	case sess.IsAdmin():
		path = "/admin/activities?limit=20"
	case sess.IsTrainer():
		path = "/trainer/activities"
	default:
		path = "/auth/activity"
	}

	var events []admin.Activity
	if err := s.gw.Get(ctx, path, &events); err != nil {
		return nil, err
	}

	out := make([]Notification, 0, len(events))
	for _, ev := range events {
		out = append(out, Notification{
			ID:        ev.ID,
			Title:     ev.Action,
			Detail:    ev.Detail,
			CreatedAt: ev.CreatedAt,
		})
	}
	return out, nil
}

// Dropdown is the header bell's controller: items are fetched when the
// dropdown opens and cleared from view when it closes.
type Dropdown struct {
	svc *Service
	log core.Logger

	mu    sync.Mutex
	open  bool
	items []Notification
}

func NewDropdown(svc *Service, logger core.Logger) *Dropdown {
	return &Dropdown{svc: svc, log: logger}
}

func (d *Dropdown) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Open shows the dropdown and refreshes its items. A failed fetch is logged
// and shows the previous items, not an error page.
func (d *Dropdown) Open(ctx context.Context) {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()

	items, err := d.svc.Fetch(ctx)
	if err != nil {
		d.log.Warn("notifications: fetch failed", err)
		return
	}

	d.mu.Lock()
	if d.open {
		d.items = items
	}
	d.mu.Unlock()
}

func (d *Dropdown) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

func (d *Dropdown) Items() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Notification(nil), d.items...)
}
