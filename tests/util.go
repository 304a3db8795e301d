// Package testutil spins up a stub of the REST backend for client tests.
// Tests register echo handlers for just the endpoints they exercise; the
// gateway client talks to it over real HTTP.
package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/nav"
	"github.com/elimulabs/elimu/core/session"
	sessionstore "github.com/elimulabs/elimu/storage/session"
)

// Stub is a fake Elimu backend. Register handlers on E under the /api
// prefix, e.g. s.E.GET("/api/courses", handler).
type Stub struct {
	E      *echo.Echo
	Server *httptest.Server
	Conf   *core.Config
}

func NewStub(t *testing.T) *Stub {
	t.Helper()
	e := echo.New()
	e.HideBanner = true
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	conf := &core.Config{
		Debug:       true,
		TestMode:    true,
		Env:         "TEST",
		AppName:     "Elimu",
		APIBaseURL:  srv.URL + "/api",
		HTTPTimeout: 5 * time.Second,
		SessionFile: t.TempDir() + "/session.json",
		ChatMode:    "internal",
	}
	return &Stub{E: e, Server: srv, Conf: conf}
}

// Down makes every request fail at the transport, for network-error paths.
func (s *Stub) Down() {
	s.Server.Close()
}

// Client returns a gateway client wired to the stub and the given store.
func (s *Stub) Client(store session.Store) *api.Client {
	return api.NewClient(s.Conf, store, core.NopLogger{})
}

// NewSession returns an authenticated session for the given role.
func NewSession(role string) session.Session {
	return session.Session{
		Token:       "test-token-" + role,
		Role:        role,
		UserID:      "7",
		Email:       role + "@elimu.test",
		DisplayName: "Test " + role,
	}
}

// AuthedStore returns an in-memory store pre-loaded with a session for role.
func AuthedStore(t *testing.T, role string) session.Store {
	t.Helper()
	store := sessionstore.NewMemStore()
	if err := store.Set(NewSession(role)); err != nil {
		t.Fatalf("AuthedStore() failed: %v", err)
	}
	return store
}

// Navigator returns a navigator over the given store, parked on the
// learner dashboard so overlay widgets start visible for authed stores.
func Navigator(store session.Store) *nav.Navigator {
	n := nav.NewNavigator(store, core.NopLogger{})
	n.Navigate(nav.PathLearnerDashboard)
	return n
}
