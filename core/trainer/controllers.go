// Package trainer holds the trainer portal's page controllers. The trainer
// endpoints mirror the admin analytics surface, scoped to the trainer's own
// courses.
package trainer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/admin"
	"github.com/elimulabs/elimu/core/view"
)

// Stats is the /trainer/stats response.
type Stats struct {
	TotalCourses       int     `json:"total_courses"`
	TotalModules       int     `json:"total_modules"`
	TotalVideos        int     `json:"total_videos"`
	TotalPDFs          int     `json:"total_pdfs"`
	TotalStudents      int     `json:"total_students"`
	AvgCompletion      float64 `json:"avg_completion"`
	TotalTranscripts   int     `json:"total_transcripts"`
	ActiveCourses      int     `json:"active_courses"`
	ProcessedLessons   int     `json:"processed_lessons"`
	UnprocessedLessons int     `json:"unprocessed_lessons"`
	TotalLessons       int     `json:"total_lessons"`
}

// Student is one row of the trainer's student progress table.
type Student struct {
	StudentID    int     `json:"student_id"`
	StudentName  string  `json:"student_name"`
	StudentEmail string  `json:"student_email"`
	CourseID     int     `json:"course_id"`
	CourseTitle  string  `json:"course_title"`
	EnrolledAt   string  `json:"enrolled_at"`
	Progress     float64 `json:"progress"`
	Status       string  `json:"status"` // not_started | in_progress | completed
}

// DashboardController fetches the trainer dashboard: stats plus the recent
// activity feed, in parallel.
type DashboardController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	stats      Stats
	activities []admin.Activity
}

func NewDashboardController(gw *api.Client, logger core.Logger) *DashboardController {
	return &DashboardController{gw: gw, log: logger}
}

func (c *DashboardController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}

	var (
		stats      Stats
		activities []admin.Activity
	)
	// each widget settles on its own; one failure must not cancel siblings
	var g errgroup.Group
	g.Go(func() error { return c.gw.Get(ctx, "/trainer/stats", &stats) })
	g.Go(func() error { return c.gw.Get(ctx, "/trainer/activities", &activities) })
	err := g.Wait()
	if err != nil {
		c.log.Error("trainer dashboard: fetch failed", err)
	}

	c.Apply(func() {
		c.stats = stats
		c.activities = activities
	})
	c.Finish(err)
	return err
}

func (c *DashboardController) Stats() Stats {
	var s Stats
	c.Apply(func() { s = c.stats })
	return s
}

func (c *DashboardController) Activities() []admin.Activity {
	var out []admin.Activity
	c.Apply(func() { out = append(out, c.activities...) })
	return out
}

// StudentsController lists students across the trainer's courses.
type StudentsController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	students []Student
}

func NewStudentsController(gw *api.Client, logger core.Logger) *StudentsController {
	return &StudentsController{gw: gw, log: logger}
}

func (c *StudentsController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}
	var students []Student
	err := c.gw.Get(ctx, "/trainer/students", &students)
	if err != nil {
		c.log.Error("trainer students: fetch failed", err)
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.students = students })
	c.Finish(nil)
	return nil
}

func (c *StudentsController) Students() []Student {
	var out []Student
	c.Apply(func() { out = append(out, c.students...) })
	return out
}

// AnalyticsController fetches the trainer's two analytics panels.
type AnalyticsController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	completion []admin.CompletionRate
	trend      []admin.EnrollmentPoint
}

func NewAnalyticsController(gw *api.Client, logger core.Logger) *AnalyticsController {
	return &AnalyticsController{gw: gw, log: logger}
}

func (c *AnalyticsController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}

	var (
		completion []admin.CompletionRate
		trend      []admin.EnrollmentPoint
	)
	var g errgroup.Group
	g.Go(func() error { return c.gw.Get(ctx, "/trainer/analytics/completion", &completion) })
	g.Go(func() error { return c.gw.Get(ctx, "/trainer/analytics/enrollment-trend", &trend) })
	err := g.Wait()
	if err != nil {
		c.log.Error("trainer analytics: fetch failed", err)
	}

	c.Apply(func() {
		c.completion = completion
		c.trend = trend
	})
	c.Finish(err)
	return err
}

func (c *AnalyticsController) Completion() []admin.CompletionRate {
	var out []admin.CompletionRate
	c.Apply(func() { out = append(out, c.completion...) })
	return out
}

func (c *AnalyticsController) EnrollmentTrend() []admin.EnrollmentPoint {
	var out []admin.EnrollmentPoint
	c.Apply(func() { out = append(out, c.trend...) })
	return out
}
