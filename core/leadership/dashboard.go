// Package leadership carries the leadership dashboard. It has no backing
// endpoint; the view ships a static demo dataset and the controller mounts
// straight to Ready.
package leadership

import (
	"github.com/elimulabs/elimu/core/view"
)

// Metric is one headline figure on the leadership dashboard.
type Metric struct {
	Label string
	Value string
	Delta string // period-over-period movement, preformatted
}

// DepartmentProgress is one row of the department completion table.
type DepartmentProgress struct {
	Department string
	Learners   int
	Completion int // percent
}

func demoMetrics() []Metric {
	return []Metric{
		{Label: "Active Learners", Value: "1,284", Delta: "+12%"},
		{Label: "Avg Completion", Value: "68%", Delta: "+5%"},
		{Label: "Courses Published", Value: "42", Delta: "+3"},
		{Label: "Certificates Issued", Value: "317", Delta: "+28"},
	}
}

func demoDepartments() []DepartmentProgress {
	return []DepartmentProgress{
		{Department: "Engineering", Learners: 412, Completion: 74},
		{Department: "Sales", Learners: 298, Completion: 61},
		{Department: "Operations", Learners: 240, Completion: 69},
		{Department: "Customer Success", Learners: 187, Completion: 72},
		{Department: "Finance", Learners: 147, Completion: 58},
	}
}

type DashboardController struct {
	view.Lifecycle

	metrics     []Metric
	departments []DepartmentProgress
}

func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

func (c *DashboardController) Load() {
	if !c.Begin() {
		return
	}
	c.Apply(func() {
		c.metrics = demoMetrics()
		c.departments = demoDepartments()
	})
	c.Finish(nil)
}

func (c *DashboardController) Metrics() []Metric {
	var out []Metric
	c.Apply(func() { out = append(out, c.metrics...) })
	return out
}

func (c *DashboardController) Departments() []DepartmentProgress {
	var out []DepartmentProgress
	c.Apply(func() { out = append(out, c.departments...) })
	return out
}
