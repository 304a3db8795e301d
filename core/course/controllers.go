// Package course holds the catalog, my-courses, overview and lesson page
// controllers. Each owns a private cache of what it fetched on mount;
// nothing is shared across pages and staleness is resolved by
// refetch-on-navigation.
package course

import (
	"context"
	"fmt"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/nav"
	"github.com/elimulabs/elimu/core/view"
)

// CatalogController drives the course catalog: the full course list plus the
// enrollment modal for the selected course.
type CatalogController struct {
	view.Lifecycle
	gw  *api.Client
	nav *nav.Navigator
	log core.Logger

	courses  []Course
	selected *Course
}

func NewCatalogController(gw *api.Client, navigator *nav.Navigator, logger core.Logger) *CatalogController {
	return &CatalogController{gw: gw, nav: navigator, log: logger}
}

// Load fetches the catalog. On failure the controller settles in Failed and
// renders an empty list; the rest of the page stays usable.
func (c *CatalogController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}
	var courses []Course
	err := c.gw.Get(ctx, "/courses", &courses)
	if err != nil {
		c.log.Error("catalog: fetch failed", err)
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.courses = courses })
	c.Finish(nil)
	return nil
}

func (c *CatalogController) Courses() []Course {
	var out []Course
	c.Apply(func() { out = append(out, c.courses...) })
	return out
}

// Select opens the enrollment modal for the given course.
func (c *CatalogController) Select(courseID int) bool {
	var found bool
	c.Apply(func() {
		for i := range c.courses {
			if c.courses[i].ID == courseID {
				sel := c.courses[i]
				c.selected = &sel
				found = true
				return
			}
		}
	})
	return found
}

func (c *CatalogController) Selected() (Course, bool) {
	var (
		sel Course
		ok  bool
	)
	c.Apply(func() {
		if c.selected != nil {
			sel, ok = *c.selected, true
		}
	})
	return sel, ok
}

func (c *CatalogController) ClearSelection() {
	c.Apply(func() { c.selected = nil })
}

// Enroll confirms enrollment for the selected course, pessimistically: on
// success it navigates to my-courses; on failure the catalog view and the
// open modal are left untouched and the user must re-trigger the action.
func (c *CatalogController) Enroll(ctx context.Context) error {
	sel, ok := c.Selected()
	if !ok {
		return nil
	}
	if err := c.gw.Post(ctx, fmt.Sprintf("/courses/%d/enroll", sel.ID), nil, nil); err != nil {
		c.log.Error("catalog: enroll failed", err, map[string]interface{}{"course": sel.ID})
		return err
	}
	c.ClearSelection()
	c.nav.Navigate(nav.PathMyCourses)
	return nil
}

// MyCoursesController lists the learner's enrollments with progress.
type MyCoursesController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	courses []Course
}

func NewMyCoursesController(gw *api.Client, logger core.Logger) *MyCoursesController {
	return &MyCoursesController{gw: gw, log: logger}
}

func (c *MyCoursesController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}
	var courses []Course
	err := c.gw.Get(ctx, "/courses/my-courses", &courses)
	if err != nil {
		c.log.Error("my-courses: fetch failed", err)
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.courses = courses })
	c.Finish(nil)
	return nil
}

func (c *MyCoursesController) Courses() []Course {
	var out []Course
	c.Apply(func() { out = append(out, c.courses...) })
	return out
}

// OverviewController shows a single course with its modules and lessons.
type OverviewController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	courseID int
	course   Course
}

func NewOverviewController(gw *api.Client, logger core.Logger, courseID int) *OverviewController {
	return &OverviewController{gw: gw, log: logger, courseID: courseID}
}

func (c *OverviewController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}
	var crs Course
	err := c.gw.Get(ctx, fmt.Sprintf("/courses/%d", c.courseID), &crs)
	if err != nil {
		c.log.Error("course overview: fetch failed", err, map[string]interface{}{"course": c.courseID})
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.course = crs })
	c.Finish(nil)
	return nil
}

func (c *OverviewController) Course() Course {
	var crs Course
	c.Apply(func() { crs = c.course })
	return crs
}

// LessonController shows one lesson and reports watch progress back.
type LessonController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	lessonID int
	lesson   Lesson
}

func NewLessonController(gw *api.Client, logger core.Logger, lessonID int) *LessonController {
	return &LessonController{gw: gw, log: logger, lessonID: lessonID}
}

func (c *LessonController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}
	var lsn Lesson
	err := c.gw.Get(ctx, fmt.Sprintf("/lessons/%d", c.lessonID), &lsn)
	if err != nil {
		c.log.Error("lesson: fetch failed", err, map[string]interface{}{"lesson": c.lessonID})
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.lesson = lsn })
	c.Finish(nil)
	return nil
}

func (c *LessonController) Lesson() Lesson {
	var lsn Lesson
	c.Apply(func() { lsn = c.lesson })
	return lsn
}

// SaveProgress reports the watch position. Optimistic: the local lesson state
// updates immediately; a failed report is logged and dropped (the next one
// supersedes it).
func (c *LessonController) SaveProgress(ctx context.Context, progress LessonProgress) {
	progress.LessonID = c.lessonID
	c.Apply(func() {
		c.lesson.CompletionPercentage = progress.CompletionPercentage
		c.lesson.LastPositionSeconds = progress.LastPositionSeconds
		c.lesson.IsCompleted = progress.IsCompleted
	})
	if err := c.gw.Post(ctx, fmt.Sprintf("/lessons/%d/progress", c.lessonID), progress, nil); err != nil {
		c.log.Warn("lesson: progress report failed", err, map[string]interface{}{"lesson": c.lessonID})
	}
}
