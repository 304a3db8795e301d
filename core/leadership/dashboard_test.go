package leadership

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elimulabs/elimu/core/view"
)

func TestDashboard_mountsReady(t *testing.T) {
	ctrl := NewDashboardController()
	assert.Equal(t, view.Idle, ctrl.Phase())

	ctrl.Load()
	assert.Equal(t, view.Ready, ctrl.Phase())
	assert.NotEmpty(t, ctrl.Metrics())
	assert.NotEmpty(t, ctrl.Departments())

	ctrl.Close()
	assert.Empty(t, ctrl.Metrics(), "unmounted controllers render nothing")
}
