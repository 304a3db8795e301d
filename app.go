// Package elimu is the client SDK for the Elimu learning platform API:
// session handling, role-gated navigation, per-view data controllers and
// the globally-mounted assistant overlay. All business logic lives behind
// the REST backend; this package only wires the client-side contract
// together.
package elimu

import (
	"log"
	"os"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/auth"
	"github.com/elimulabs/elimu/core/chat"
	"github.com/elimulabs/elimu/core/nav"
	"github.com/elimulabs/elimu/core/notify"
	"github.com/elimulabs/elimu/core/session"
	logsvc "github.com/elimulabs/elimu/services/logger"
	sessionstore "github.com/elimulabs/elimu/storage/session"
)

// App aggregates the client's long-lived pieces. Page controllers are
// created per view from Gateway and Nav as screens mount.
type App struct {
	Conf    *core.Config
	Log     core.Logger
	Store   session.Store
	Gateway *api.Client
	Nav     *nav.Navigator

	Auth          *auth.Service
	Chat          *chat.Overlay
	Notifications *notify.Dropdown
}

// NewApp wires an App from config: file-backed session store, one gateway
// client, one navigator, and the globally-mounted overlay widgets.
func NewApp(conf *core.Config) *App {
	std := log.New(os.Stderr, conf.AppName+" ", log.LstdFlags|log.Lshortfile)

	store := sessionstore.NewFileStore(conf.SessionFile)

	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf, store)
	} else {
		logger = core.NewStdLogger(std)
	}

	gw := api.NewClient(conf, store, logger)
	navigator := nav.NewNavigator(store, logger)

	return &App{
		Conf:          conf,
		Log:           logger,
		Store:         store,
		Gateway:       gw,
		Nav:           navigator,
		Auth:          auth.NewService(gw, store, navigator, logger),
		Chat:          chat.NewOverlay(gw, store, navigator, logger, conf.ChatMode),
		Notifications: notify.NewDropdown(notify.NewService(gw, store, logger), logger),
	}
}

// Resume restores navigation for a stored session: straight to the role's
// landing page when one exists, the login screen otherwise. Returns the
// path landed on.
func (a *App) Resume() string {
	if sess, ok := a.Store.Get(); ok {
		return a.Nav.Navigate(nav.ResolveLanding(sess.Role))
	}
	return a.Nav.Navigate(nav.PathLogin)
}
