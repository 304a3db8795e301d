package learn_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/learn"
	"github.com/elimulabs/elimu/core/session"
	"github.com/elimulabs/elimu/core/view"
	testutil "github.com/elimulabs/elimu/tests"
)

func TestDashboard_load(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/learning/dashboard", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user": map[string]interface{}{"name": "Ada L", "streak": 4},
			"courses": []map[string]interface{}{
				{"id": 1, "title": "Go Basics", "progress": 60, "completed_lessons": 3, "total_lessons": 5},
				{"id": 2, "title": "UI Design", "progress": 20},
			},
			"stats": map[string]interface{}{"enrolled_courses": 2, "completed_lessons": 3},
		})
	})

	store := testutil.AuthedStore(t, session.RoleLearner)
	ctrl := learn.NewDashboardController(stub.Client(store), core.NopLogger{})
	require.NoError(t, ctrl.Load(context.Background()))

	data := ctrl.Data()
	assert.Equal(t, "Ada L", data.User.Name)
	assert.Equal(t, 4, data.User.Streak)
	assert.Equal(t, 2, data.Stats.EnrolledCourses)
	assert.Equal(t, 40, data.OverallProgress())
}

func TestDashboard_overallProgressEmpty(t *testing.T) {
	var data learn.DashboardData
	assert.Equal(t, 0, data.OverallProgress())
}

func TestHub_loadFailureDegradesToEmpty(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/learning/ai-hub", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "boom"})
	})

	store := testutil.AuthedStore(t, session.RoleLearner)
	ctrl := learn.NewHubController(stub.Client(store), core.NopLogger{})
	require.Error(t, ctrl.Load(context.Background()))

	assert.Equal(t, view.Failed, ctrl.Phase())
	data := ctrl.Data()
	assert.Empty(t, data.Recommendations)
	assert.Empty(t, data.Walkthroughs)
}

func TestHub_load(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.E.GET("/api/learning/ai-hub", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"recommendations":  []map[string]interface{}{{"id": 1, "title": "Revise pointers", "course_id": 1}},
			"video_explainers": []map[string]interface{}{{"id": 2, "title": "Slices explained", "media_url": "https://cdn/v/2"}},
			"audio_summaries":  []map[string]interface{}{},
			"walkthroughs":     []map[string]interface{}{{"id": 3, "title": "Build a CLI"}},
		})
	})

	store := testutil.AuthedStore(t, session.RoleLearner)
	ctrl := learn.NewHubController(stub.Client(store), core.NopLogger{})
	require.NoError(t, ctrl.Load(context.Background()))

	data := ctrl.Data()
	assert.Len(t, data.Recommendations, 1)
	assert.Len(t, data.VideoExplainers, 1)
	assert.Empty(t, data.AudioSummaries)
	assert.Len(t, data.Walkthroughs, 1)
}

func TestRevision_toggle(t *testing.T) {
	ctrl := learn.NewRevisionController(core.NopLogger{})
	ctrl.Load()

	tasks := ctrl.Tasks()
	require.NotEmpty(t, tasks)
	assert.Equal(t, len(tasks), ctrl.Remaining())

	assert.True(t, ctrl.MarkDone(tasks[0].ID, true))
	assert.Equal(t, len(tasks)-1, ctrl.Remaining())
	assert.True(t, ctrl.Tasks()[0].Done)

	assert.True(t, ctrl.MarkDone(tasks[0].ID, false), "toggling back")
	assert.Equal(t, len(tasks), ctrl.Remaining())

	assert.False(t, ctrl.MarkDone(999, true), "unknown task")
}
