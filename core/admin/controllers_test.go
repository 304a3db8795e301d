package admin_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/admin"
	"github.com/elimulabs/elimu/core/session"
	"github.com/elimulabs/elimu/core/view"
	testutil "github.com/elimulabs/elimu/tests"
)

var usersPageJSON = map[string]interface{}{
	"users": []map[string]interface{}{
		{"id": 1, "full_name": "Ada L", "email": "ada@x.com", "role": "learner", "status": "approved", "is_active": true},
		{"id": 2, "full_name": "Bob T", "email": "bob@x.com", "role": "trainer", "status": "pending", "is_active": false},
	},
	"total": 2, "page": 1, "page_size": 15,
}

func adminClient(t *testing.T, stub *testutil.Stub) *admin.UsersController {
	t.Helper()
	store := testutil.AuthedStore(t, session.RoleAdmin)
	return admin.NewUsersController(stub.Client(store), core.NopLogger{})
}

func TestDashboard_parallelWidgets(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/admin/stats", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"total_users": 120, "total_courses": 8, "active_users": 34,
			"role_distribution": []map[string]interface{}{{"role": "learner", "count": 100}},
		})
	})
	stub.E.GET("/api/admin/activities", func(c echo.Context) error {
		assert.Equal(t, "20", c.QueryParam("limit"))
		return c.JSON(http.StatusOK, []map[string]interface{}{
			{"id": 1, "action": "login", "user_name": "Ada L"},
		})
	})
	stub.E.GET("/api/admin/analytics/enrollment-trend", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []map[string]interface{}{
			{"month": "Jul", "users": 12}, {"month": "Aug", "users": 19},
		})
	})

	store := testutil.AuthedStore(t, session.RoleAdmin)
	ctrl := admin.NewDashboardController(stub.Client(store), core.NopLogger{})
	require.NoError(t, ctrl.Load(context.Background()))
	assert.Equal(t, view.Ready, ctrl.Phase())

	assert.Equal(t, 120, ctrl.Stats().TotalUsers)
	assert.Len(t, ctrl.Activities(), 1)
	assert.Len(t, ctrl.EnrollmentTrend(), 2)
}

func TestDashboard_partialFailureKeepsGoodWidgets(t *testing.T) {
	stub := testutil.NewStub(t)
	// the failing widget settles first; the slow siblings must still land
	stub.E.GET("/api/admin/stats", func(c echo.Context) error {
		time.Sleep(200 * time.Millisecond)
		return c.JSON(http.StatusOK, map[string]interface{}{"total_users": 120})
	})
	stub.E.GET("/api/admin/activities", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "boom"})
	})
	stub.E.GET("/api/admin/analytics/enrollment-trend", func(c echo.Context) error {
		time.Sleep(200 * time.Millisecond)
		return c.JSON(http.StatusOK, []map[string]interface{}{{"month": "Aug", "users": 19}})
	})

	store := testutil.AuthedStore(t, session.RoleAdmin)
	ctrl := admin.NewDashboardController(stub.Client(store), core.NopLogger{})
	require.Error(t, ctrl.Load(context.Background()))

	assert.Equal(t, view.Failed, ctrl.Phase())
	assert.Equal(t, 120, ctrl.Stats().TotalUsers, "widgets that fetched still render")
	assert.Len(t, ctrl.EnrollmentTrend(), 1)
	assert.Empty(t, ctrl.Activities())
}

func TestUsers_load(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/admin/users", func(c echo.Context) error {
		assert.Equal(t, "1", c.QueryParam("page"))
		assert.Equal(t, "15", c.QueryParam("page_size"))
		return c.JSON(http.StatusOK, usersPageJSON)
	})

	ctrl := adminClient(t, stub)
	require.NoError(t, ctrl.Load(context.Background(), 1))

	page := ctrl.Page()
	require.Len(t, page.Users, 2)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "Ada L", page.Users[0].FullName)
}

func TestUsers_toggleActivePessimistic(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/admin/users", func(c echo.Context) error {
		return c.JSON(http.StatusOK, usersPageJSON)
	})
	stub.E.POST("/api/admin/users/1/toggle-active", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id": 1, "full_name": "Ada L", "email": "ada@x.com",
			"role": "learner", "status": "approved", "is_active": false,
		})
	})

	ctrl := adminClient(t, stub)
	require.NoError(t, ctrl.Load(context.Background(), 1))

	require.NoError(t, ctrl.ToggleActive(context.Background(), 1))
	page := ctrl.Page()
	assert.False(t, page.Users[0].IsActive, "row replaced with the server's confirmed state")
	assert.Equal(t, 2, page.Users[1].ID, "other rows untouched")
	assert.Equal(t, "pending", page.Users[1].Status)
}

func TestUsers_toggleActiveFailureLeavesRow(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/admin/users", func(c echo.Context) error {
		return c.JSON(http.StatusOK, usersPageJSON)
	})
	stub.E.POST("/api/admin/users/1/toggle-active", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "boom"})
	})

	ctrl := adminClient(t, stub)
	require.NoError(t, ctrl.Load(context.Background(), 1))

	require.Error(t, ctrl.ToggleActive(context.Background(), 1))
	page := ctrl.Page()
	assert.True(t, page.Users[0].IsActive, "no optimistic flip; prior state stands")
}

func TestUsers_approveAndChangeRole(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/admin/users", func(c echo.Context) error {
		return c.JSON(http.StatusOK, usersPageJSON)
	})
	stub.E.POST("/api/admin/users/2/approve", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id": 2, "full_name": "Bob T", "email": "bob@x.com",
			"role": "trainer", "status": "approved", "is_active": true,
		})
	})
	var roleBody map[string]string
	stub.E.POST("/api/admin/users/2/change-role", func(c echo.Context) error {
		if err := c.Bind(&roleBody); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id": 2, "full_name": "Bob T", "email": "bob@x.com",
			"role": roleBody["role"], "status": "approved", "is_active": true,
		})
	})

	ctrl := adminClient(t, stub)
	require.NoError(t, ctrl.Load(context.Background(), 1))

	require.NoError(t, ctrl.Approve(context.Background(), 2))
	assert.Equal(t, "approved", ctrl.Page().Users[1].Status)

	require.NoError(t, ctrl.ChangeRole(context.Background(), 2, "learner"))
	assert.Equal(t, "learner", roleBody["role"])
	assert.Equal(t, "learner", ctrl.Page().Users[1].Role)
}

func TestAnalytics_load(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/admin/analytics/completion", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []map[string]interface{}{
			{"id": 1, "name": "Go Basics", "completion": 73.5, "students": 40},
		})
	})
	stub.E.GET("/api/admin/analytics/difficult-topics", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []map[string]interface{}{
			{"topic": "Pointers", "difficulty": 0.8, "attempts": 12},
		})
	})
	stub.E.GET("/api/admin/analytics/enrollment-trend", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []map[string]interface{}{{"month": "Aug", "users": 19}})
	})
	stub.E.GET("/api/admin/analytics/registrations", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []map[string]interface{}{
			{"id": 3, "full_name": "Cy D", "email": "cy@x.com", "role": "learner"},
		})
	})

	store := testutil.AuthedStore(t, session.RoleAdmin)
	ctrl := admin.NewAnalyticsController(stub.Client(store), core.NopLogger{})
	require.NoError(t, ctrl.Load(context.Background()))

	assert.Len(t, ctrl.Completion(), 1)
	assert.Len(t, ctrl.DifficultTopics(), 1)
	assert.Len(t, ctrl.EnrollmentTrend(), 1)
	assert.Len(t, ctrl.Registrations(), 1)
}

func TestCertificates_revoke(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/admin/certificates", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"certificates": []map[string]interface{}{
				{"id": 5, "user_name": "Ada L", "course_title": "Go Basics", "revoked": false},
			},
			"total": 1, "page": 1, "page_size": 15,
		})
	})
	revokeOK := true
	stub.E.POST("/api/admin/certificates/5/revoke", func(c echo.Context) error {
		if !revokeOK {
			return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "boom"})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "revoked"})
	})

	store := testutil.AuthedStore(t, session.RoleAdmin)
	ctrl := admin.NewCertificatesController(stub.Client(store), core.NopLogger{})
	require.NoError(t, ctrl.Load(context.Background(), 1))

	revokeOK = false
	require.Error(t, ctrl.Revoke(context.Background(), 5))
	assert.False(t, ctrl.Page().Certificates[0].Revoked, "failure leaves the row alone")

	revokeOK = true
	require.NoError(t, ctrl.Revoke(context.Background(), 5))
	assert.True(t, ctrl.Page().Certificates[0].Revoked)
}
