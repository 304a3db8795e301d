// Package learn holds the learner-facing page controllers: dashboard,
// AI learning hub and revision assistant.
package learn

import (
	"context"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/view"
)

// DashboardData is the /learning/dashboard response.
type DashboardData struct {
	User struct {
		Name   string `json:"name"`
		Streak int    `json:"streak"`
	} `json:"user"`
	Courses []DashboardCourse `json:"courses"`
	Stats   struct {
		EnrolledCourses  int `json:"enrolled_courses"`
		CompletedLessons int `json:"completed_lessons"`
	} `json:"stats"`
}

type DashboardCourse struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Progress         int    `json:"progress"`
	CompletedLessons int    `json:"completed_lessons"`
	TotalLessons     int    `json:"total_lessons"`
}

// OverallProgress averages per-course progress for the header banner.
func (d DashboardData) OverallProgress() int {
	if len(d.Courses) == 0 {
		return 0
	}
	var sum int
	for _, c := range d.Courses {
		sum += c.Progress
	}
	return sum / len(d.Courses)
}

// DashboardController fetches the learner dashboard on mount.
type DashboardController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	data DashboardData
}

func NewDashboardController(gw *api.Client, logger core.Logger) *DashboardController {
	return &DashboardController{gw: gw, log: logger}
}

func (c *DashboardController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}
	var data DashboardData
	err := c.gw.Get(ctx, "/learning/dashboard", &data)
	if err != nil {
		c.log.Error("learner dashboard: fetch failed", err)
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.data = data })
	c.Finish(nil)
	return nil
}

func (c *DashboardController) Data() DashboardData {
	var data DashboardData
	c.Apply(func() { data = c.data })
	return data
}
