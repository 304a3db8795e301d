package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/auth"
	"github.com/elimulabs/elimu/core/nav"
	"github.com/elimulabs/elimu/core/session"
	sessionstore "github.com/elimulabs/elimu/storage/session"
	testutil "github.com/elimulabs/elimu/tests"
)

func newService(t *testing.T, stub *testutil.Stub) (*auth.Service, session.Store, *nav.Navigator) {
	t.Helper()
	store := sessionstore.NewMemStore()
	navigator := nav.NewNavigator(store, core.NopLogger{})
	svc := auth.NewService(stub.Client(store), store, navigator, core.NopLogger{})
	return svc, store, navigator
}

func TestLogin_success(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.POST("/api/auth/login", func(c echo.Context) error {
		if c.FormValue("username") != "u@x.com" || c.FormValue("password") != "secret1" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		}
		return c.JSON(http.StatusOK, map[string]string{"access_token": "abc", "token_type": "bearer"})
	})
	stub.E.GET("/api/auth/me", func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") != "Bearer abc" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id": 7, "email": "u@x.com", "full_name": "Uma Trainer", "role": "trainer",
		})
	})

	svc, store, navigator := newService(t, stub)
	landed, err := svc.Login(context.Background(), auth.LoginForm{
		Email: "u@x.com", Password: "secret1", Remember: true,
	})
	require.NoError(t, err)

	assert.Equal(t, nav.PathTrainerDashboard, landed)
	assert.Equal(t, nav.PathTrainerDashboard, navigator.Current())

	sess, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, session.RoleTrainer, sess.Role)
	assert.Equal(t, "7", sess.UserID)
	assert.Equal(t, "u@x.com", sess.Email)
	assert.Equal(t, "Uma Trainer", sess.DisplayName)
	assert.True(t, sess.Remember)
}

func TestLogin_pendingAccountShowsServerDetail(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.POST("/api/auth/login", func(c echo.Context) error {
		return c.JSON(http.StatusForbidden, map[string]string{"detail": "Account pending approval"})
	})

	svc, store, navigator := newService(t, stub)
	before := navigator.Current()

	_, err := svc.Login(context.Background(), auth.LoginForm{Email: "u@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Account pending approval", err.Error())

	_, ok := store.Get()
	assert.False(t, ok, "session stays absent")
	assert.Equal(t, before, navigator.Current(), "no navigation occurs")
}

func TestLogin_networkFailure(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.Down()

	svc, store, _ := newService(t, stub)
	_, err := svc.Login(context.Background(), auth.LoginForm{Email: "u@x.com", Password: "secret1"})
	assert.Equal(t, auth.ErrNetwork, err)

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestLogin_profileFetchFailure(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.POST("/api/auth/login", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"access_token": "abc"})
	})
	stub.E.GET("/api/auth/me", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "boom"})
	})

	svc, store, _ := newService(t, stub)
	_, err := svc.Login(context.Background(), auth.LoginForm{Email: "u@x.com", Password: "secret1"})
	assert.Equal(t, auth.ErrProfileFetch, err)

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestLogin_validation(t *testing.T) {
	stub := testutil.NewStub(t)
	svc, _, _ := newService(t, stub)

	tests := []struct {
		name  string
		form  auth.LoginForm
		field string
	}{
		{"missing email", auth.LoginForm{Password: "secret1"}, "email"},
		{"bad email", auth.LoginForm{Email: "nope", Password: "secret1"}, "email"},
		{"missing password", auth.LoginForm{Email: "u@x.com"}, "password"},
		{"short password", auth.LoginForm{Email: "u@x.com", Password: "abc"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.form)
			var vErr *core.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.FieldText(tt.field))
		})
	}
}

func TestRegister_validation(t *testing.T) {
	stub := testutil.NewStub(t)
	svc, _, _ := newService(t, stub)

	base := auth.SignupForm{
		FullName:        "Ada L",
		Email:           "ada@x.com",
		Password:        "Str0ngPass",
		PasswordConfirm: "Str0ngPass",
		Role:            "learner",
		AgreeToTerms:    true,
	}

	tests := []struct {
		name   string
		mutate func(*auth.SignupForm)
		field  string
	}{
		{"short name", func(f *auth.SignupForm) { f.FullName = "A" }, "full_name"},
		{"weak password", func(f *auth.SignupForm) { f.Password, f.PasswordConfirm = "alllower1", "alllower1" }, "password"},
		{"short password", func(f *auth.SignupForm) { f.Password, f.PasswordConfirm = "Ab1", "Ab1" }, "password"},
		{"confirm mismatch", func(f *auth.SignupForm) { f.PasswordConfirm = "Other1Pass" }, "confirm_password"},
		{"bad role", func(f *auth.SignupForm) { f.Role = "root" }, "role"},
		{"terms not agreed", func(f *auth.SignupForm) { f.AgreeToTerms = false }, "agree_to_terms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := base
			tt.mutate(&form)
			err := svc.Register(context.Background(), form)
			var vErr *core.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.FieldText(tt.field))
		})
	}
}

func TestRegister_success(t *testing.T) {
	stub := testutil.NewStub(t)
	var got map[string]string
	stub.E.POST("/api/auth/register", func(c echo.Context) error {
		if err := c.Bind(&got); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"id": 9, "email": got["email"]})
	})

	svc, store, _ := newService(t, stub)
	err := svc.Register(context.Background(), auth.SignupForm{
		FullName:        "Ada L",
		Email:           "Ada@X.com ",
		Password:        "Str0ngPass",
		PasswordConfirm: "Str0ngPass",
		Role:            "learner",
		AgreeToTerms:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@x.com", got["email"], "email is cleaned before submission")
	assert.Equal(t, "Ada L", got["full_name"])
	assert.Equal(t, "learner", got["role"])

	_, ok := store.Get()
	assert.False(t, ok, "registration never writes a session")
}

func TestLogout(t *testing.T) {
	stub := testutil.NewStub(t)
	svc, store, navigator := newService(t, stub)

	require.NoError(t, store.Set(testutil.NewSession(session.RoleLearner)))
	navigator.Navigate(nav.PathLearnerDashboard)

	landed := svc.Logout()
	assert.Equal(t, nav.PathLogin, landed)

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestForceRelogin(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/courses", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Token expired"})
	})

	svc, store, navigator := newService(t, stub)
	require.NoError(t, store.Set(testutil.NewSession(session.RoleLearner)))
	navigator.Navigate(nav.PathCourseCatalog)

	err := stub.Client(store).Get(context.Background(), "/courses", nil)
	require.Error(t, err)

	assert.True(t, svc.ForceRelogin(err))
	_, ok := store.Get()
	assert.False(t, ok, "invalid session is cleared")
	assert.Equal(t, nav.PathLogin, navigator.Current())

	// non-auth errors are left to the caller
	assert.False(t, svc.ForceRelogin(assert.AnError))
}
