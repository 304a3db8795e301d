package auth

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/nav"
	"github.com/elimulabs/elimu/core/session"
)

var (
	// errors; messages are shown verbatim in the screen's error area
	ErrNetwork        = errors.New("Network error. Please check your connection and try again.")
	ErrProfileFetch   = errors.New("Failed to retrieve user profile.")
	errLoginFailed    = errors.New("Login failed")
	errRegisterFailed = errors.New("Registration failed")
)

// Service owns the only code paths allowed to write the session store:
// login, registration and logout.
type Service struct {
	gw    *api.Client
	store session.Store
	nav   *nav.Navigator
	log   core.Logger
}

func NewService(gw *api.Client, store session.Store, navigator *nav.Navigator, logger core.Logger) *Service {
	return &Service{gw: gw, store: store, nav: navigator, log: logger}
}

// Login validates the form, exchanges credentials for a token, fetches the
// profile and writes the session in one atomic Set, then performs the
// one-time redirect to the role's landing page. On any failure the session
// is left absent and no navigation occurs; the returned error's message is
// the exact string to display (server detail for pending/revoked accounts).
func (svc *Service) Login(ctx context.Context, form LoginForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	creds := url.Values{}
	creds.Set("username", form.Email)
	creds.Set("password", form.Password)

	var tok tokenResponse
	if err := svc.gw.PostForm(ctx, "/auth/login", creds, &tok); err != nil {
		return "", loginError(err)
	}

	var prof Profile
	if err := svc.gw.GetWithToken(ctx, "/auth/me", tok.AccessToken, &prof); err != nil {
		svc.log.Error("auth: profile fetch failed after login", err)
		if api.IsNetwork(err) {
			return "", ErrNetwork
		}
		return "", ErrProfileFetch
	}

	sess := session.Session{
		Token:       tok.AccessToken,
		Role:        prof.Role,
		UserID:      strconv.Itoa(prof.ID),
		Email:       prof.Email,
		DisplayName: prof.FullName,
		Remember:    form.Remember,
	}
	if err := svc.store.Set(sess); err != nil {
		return "", err
	}

	return svc.nav.Navigate(nav.ResolveLanding(prof.Role)), nil
}

func loginError(err error) error {
	if api.IsNetwork(err) {
		return ErrNetwork
	}
	if detail := api.Detail(err); detail != "" {
		return errors.New(detail)
	}
	return errLoginFailed
}

// Register validates the signup form and creates a pending account. It never
// writes a session; new accounts await approval and sign in afterwards.
func (svc *Service) Register(ctx context.Context, form SignupForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	payload := registerPayload{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	}
	if err := svc.gw.Post(ctx, "/auth/register", payload, nil); err != nil {
		if api.IsNetwork(err) {
			return ErrNetwork
		}
		if detail := api.Detail(err); detail != "" {
			return errors.New(detail)
		}
		return errRegisterFailed
	}
	return nil
}

// Me re-fetches the authenticated profile with the stored token.
func (svc *Service) Me(ctx context.Context) (Profile, error) {
	var prof Profile
	err := svc.gw.Get(ctx, "/auth/me", &prof)
	return prof, err
}

// ChangePassword submits the settings screen's password change.
func (svc *Service) ChangePassword(ctx context.Context, form ChangePasswordForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return svc.gw.Post(ctx, "/auth/change-password", form, nil)
}

// Logout clears the session and lands on the login screen.
func (svc *Service) Logout() string {
	if err := svc.store.Clear(); err != nil {
		svc.log.Error("auth: clearing session failed", err)
	}
	return svc.nav.Navigate(nav.PathLogin)
}

// ForceRelogin is the caller-side reaction to an Unauthorized gateway error:
// clear the invalid session and redirect to login. It reports whether err
// warranted it.
func (svc *Service) ForceRelogin(err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	if clearErr := svc.store.Clear(); clearErr != nil {
		svc.log.Error("auth: clearing session failed", clearErr)
	}
	svc.nav.Navigate(nav.PathLogin)
	return true
}
