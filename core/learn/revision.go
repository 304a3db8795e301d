package learn

import (
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/view"
)

// StudyTask is one item on the revision assistant's study plan.
type StudyTask struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Topic    string `json:"topic"`
	Duration string `json:"duration"`
	Done     bool   `json:"done"`
}

// DefaultStudyPlan is the revision assistant's demo dataset. No backing
// endpoint exists for the study plan; the view is client-side scaffolding.
func DefaultStudyPlan() []StudyTask {
	return []StudyTask{
		{ID: 1, Title: "Review Python loop constructs", Topic: "Python Basics", Duration: "15 min"},
		{ID: 2, Title: "Re-watch backpropagation explainer", Topic: "Neural Networks", Duration: "20 min"},
		{ID: 3, Title: "Practice visual hierarchy exercises", Topic: "UI Design", Duration: "25 min"},
		{ID: 4, Title: "Redo indentation quiz questions", Topic: "Python Basics", Duration: "10 min"},
	}
}

// RevisionController drives the revision assistant's study plan. Task
// completion is an optimistic local toggle; there is nothing to confirm
// server-side.
type RevisionController struct {
	view.Lifecycle
	log core.Logger

	tasks []StudyTask
}

func NewRevisionController(logger core.Logger) *RevisionController {
	return &RevisionController{log: logger}
}

// Load installs the study plan. The controller goes straight to Ready; the
// dataset is local.
func (c *RevisionController) Load() {
	if !c.Begin() {
		return
	}
	c.Apply(func() { c.tasks = DefaultStudyPlan() })
	c.Finish(nil)
}

func (c *RevisionController) Tasks() []StudyTask {
	var out []StudyTask
	c.Apply(func() { out = append(out, c.tasks...) })
	return out
}

// MarkDone toggles a task's completion, optimistically and locally.
func (c *RevisionController) MarkDone(taskID int, done bool) bool {
	var found bool
	c.Apply(func() {
		for i := range c.tasks {
			if c.tasks[i].ID == taskID {
				c.tasks[i].Done = done
				found = true
				return
			}
		}
	})
	return found
}

// Remaining counts unfinished tasks.
func (c *RevisionController) Remaining() int {
	var n int
	c.Apply(func() {
		for _, t := range c.tasks {
			if !t.Done {
				n++
			}
		}
	})
	return n
}
