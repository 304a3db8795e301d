// Package admin holds the admin portal's page controllers: dashboard,
// user management, analytics and certificates. Mutations that flip a
// displayed flag (toggle-active, approve, revoke) are pessimistic: local
// state changes only after the server confirms.
package admin

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/elimulabs/elimu/api"
	"github.com/elimulabs/elimu/core"
	"github.com/elimulabs/elimu/core/view"
)

// DashboardController fetches the admin dashboard's widgets in parallel.
// Any widget failure settles the controller in Failed, but whatever fetched
// successfully is kept so those widgets render instead of a page crash.
type DashboardController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	stats      Stats
	activities []Activity
	trend      []EnrollmentPoint
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
		activities []Activity
		trend      []EnrollmentPoint
	)
	// each widget settles on its own; one failure must not cancel siblings
	var g errgroup.Group
	g.Go(func() error { return c.gw.Get(ctx, "/admin/stats", &stats) })
	g.Go(func() error { return c.gw.Get(ctx, "/admin/activities?limit=20", &activities) })
	g.Go(func() error { return c.gw.Get(ctx, "/admin/analytics/enrollment-trend", &trend) })
	err := g.Wait()
	if err != nil {
		c.log.Error("admin dashboard: widget fetch failed", err)
	}

	c.Apply(func() {
		c.stats = stats
		c.activities = activities
		c.trend = trend
	})
	c.Finish(err)
	return err
}

func (c *DashboardController) Stats() Stats {
	var s Stats
	c.Apply(func() { s = c.stats })
	return s
}

func (c *DashboardController) Activities() []Activity {
	var out []Activity
	c.Apply(func() { out = append(out, c.activities...) })
	return out
}

func (c *DashboardController) EnrollmentTrend() []EnrollmentPoint {
	var out []EnrollmentPoint
	c.Apply(func() { out = append(out, c.trend...) })
	return out
}

// UsersController drives the user management table.
type UsersController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	page UserPage
}

func NewUsersController(gw *api.Client, logger core.Logger) *UsersController {
	return &UsersController{gw: gw, log: logger}
}

func (c *UsersController) Load(ctx context.Context, page int) error {
	if !c.Begin() {
		return nil
	}
	var up UserPage
	err := c.gw.Get(ctx, fmt.Sprintf("/admin/users?page=%d&page_size=15", page), &up)
	if err != nil {
		c.log.Error("admin users: fetch failed", err)
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.page = up })
	c.Finish(nil)
	return nil
}

func (c *UsersController) Page() UserPage {
	var up UserPage
	c.Apply(func() {
		up = c.page
		up.Users = append([]UserRow(nil), c.page.Users...)
	})
	return up
}

// ToggleActive flips a user's active flag, pessimistically: the displayed
// row changes only with the server's confirmed row; on failure prior state
// is left unchanged and the error is logged.
func (c *UsersController) ToggleActive(ctx context.Context, userID int) error {
	return c.userAction(ctx, userID, "toggle-active", nil)
}

// Approve moves a pending account to approved.
func (c *UsersController) Approve(ctx context.Context, userID int) error {
	return c.userAction(ctx, userID, "approve", nil)
}

// Revoke locks an account out.
func (c *UsersController) Revoke(ctx context.Context, userID int) error {
	return c.userAction(ctx, userID, "revoke", nil)
}

// ChangeRole switches a user between learner and trainer.
func (c *UsersController) ChangeRole(ctx context.Context, userID int, role string) error {
	return c.userAction(ctx, userID, "change-role", map[string]string{"role": role})
}

// ResetPassword sets a new password for the user; the table row is
// unchanged either way.
func (c *UsersController) ResetPassword(ctx context.Context, userID int, newPassword string) error {
	if err := c.gw.Post(ctx, fmt.Sprintf("/admin/users/%d/reset-password", userID), map[string]string{"new_password": newPassword}, nil); err != nil {
		c.log.Error("admin users: reset-password failed", err, map[string]interface{}{"user": userID})
		return err
	}
	return nil
}

func (c *UsersController) userAction(ctx context.Context, userID int, action string, body interface{}) error {
	var updated UserRow
	if err := c.gw.Post(ctx, fmt.Sprintf("/admin/users/%d/%s", userID, action), body, &updated); err != nil {
		c.log.Error("admin users: "+action+" failed", err, map[string]interface{}{"user": userID})
		return err
	}
	c.Apply(func() {
		for i := range c.page.Users {
			if c.page.Users[i].ID == userID {
				c.page.Users[i] = updated
				return
			}
		}
	})
	return nil
}

// AnalyticsController fetches the four analytics panels in parallel.
type AnalyticsController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	completion    []CompletionRate
	topics        []DifficultTopic
	trend         []EnrollmentPoint
	registrations []Registration
}

func NewAnalyticsController(gw *api.Client, logger core.Logger) *AnalyticsController {
	return &AnalyticsController{gw: gw, log: logger}
}

func (c *AnalyticsController) Load(ctx context.Context) error {
	if !c.Begin() {
		return nil
	}

	var (
		completion    []CompletionRate
		topics        []DifficultTopic
		trend         []EnrollmentPoint
		registrations []Registration
	)
	var g errgroup.Group
	g.Go(func() error { return c.gw.Get(ctx, "/admin/analytics/completion", &completion) })
	g.Go(func() error { return c.gw.Get(ctx, "/admin/analytics/difficult-topics", &topics) })
	g.Go(func() error { return c.gw.Get(ctx, "/admin/analytics/enrollment-trend", &trend) })
	g.Go(func() error { return c.gw.Get(ctx, "/admin/analytics/registrations", &registrations) })
	err := g.Wait()
	if err != nil {
		c.log.Error("admin analytics: panel fetch failed", err)
	}

	c.Apply(func() {
		c.completion = completion
		c.topics = topics
		c.trend = trend
		c.registrations = registrations
	})
	c.Finish(err)
	return err
}

func (c *AnalyticsController) Completion() []CompletionRate {
	var out []CompletionRate
	c.Apply(func() { out = append(out, c.completion...) })
	return out
}

func (c *AnalyticsController) DifficultTopics() []DifficultTopic {
	var out []DifficultTopic
	c.Apply(func() { out = append(out, c.topics...) })
	return out
}

func (c *AnalyticsController) EnrollmentTrend() []EnrollmentPoint {
	var out []EnrollmentPoint
	c.Apply(func() { out = append(out, c.trend...) })
	return out
}

func (c *AnalyticsController) Registrations() []Registration {
	var out []Registration
	c.Apply(func() { out = append(out, c.registrations...) })
	return out
}

// CertificatesController drives the certificates table.
type CertificatesController struct {
	view.Lifecycle
	gw  *api.Client
	log core.Logger

	page CertificatePage
}

func NewCertificatesController(gw *api.Client, logger core.Logger) *CertificatesController {
	return &CertificatesController{gw: gw, log: logger}
}

func (c *CertificatesController) Load(ctx context.Context, page int) error {
	if !c.Begin() {
		return nil
	}
	var cp CertificatePage
	err := c.gw.Get(ctx, fmt.Sprintf("/admin/certificates?page=%d&page_size=15", page), &cp)
	if err != nil {
		c.log.Error("admin certificates: fetch failed", err)
		c.Finish(err)
		return err
	}
	c.Apply(func() { c.page = cp })
	c.Finish(nil)
	return nil
}

func (c *CertificatesController) Page() CertificatePage {
	var cp CertificatePage
	c.Apply(func() {
		cp = c.page
		cp.Certificates = append([]Certificate(nil), c.page.Certificates...)
	})
	return cp
}

// Revoke invalidates a certificate, pessimistically.
func (c *CertificatesController) Revoke(ctx context.Context, certID int) error {
	if err := c.gw.Post(ctx, fmt.Sprintf("/admin/certificates/%d/revoke", certID), nil, nil); err != nil {
		c.log.Error("admin certificates: revoke failed", err, map[string]interface{}{"certificate": certID})
		return err
	}
	c.Apply(func() {
		for i := range c.page.Certificates {
			if c.page.Certificates[i].ID == certID {
				c.page.Certificates[i].Revoked = true
				return
			}
		}
	})
	return nil
}
