package nav

import (
	"strings"

	"github.com/elimulabs/elimu/core/session"
)

// Route paths. These mirror the application's view map: auth screens, one
// dashboard per role, and the role-prefixed page sets.
const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathForgotPassword = "/forgot-password"

	PathLearnerDashboard    = "/dashboard/learner"
	PathTrainerDashboard    = "/dashboard/trainer"
	PathAdminDashboard      = "/dashboard/admin"
	PathLeadershipDashboard = "/dashboard/leadership"

	PathCourseCatalog = "/learner/courses"
	PathMyCourses     = "/learner/my-courses"
	PathAIHub         = "/learner/ai-hub"
	PathRevision      = "/learner/revision"
	PathAnalytics     = "/learner/analytics"

	PathTrainerCourses   = "/trainer/courses"
	PathTrainerStudents  = "/trainer/students"
	PathTrainerAnalytics = "/trainer/analytics"

	PathAdminUsers        = "/admin/users"
	PathAdminCourses      = "/admin/courses"
	PathAdminAnalytics    = "/admin/analytics"
	PathAdminCertificates = "/admin/certificates"
)

// publicPaths is the fixed allowlist reachable without a session. The chat
// overlay is suppressed on these same routes.
var publicPaths = []string{PathRoot, PathLogin, PathSignup, PathForgotPassword}

func IsPublic(path string) bool {
	for _, p := range publicPaths {
		if p == path {
			return true
		}
	}
	return false
}

// landings maps a role to its post-login dashboard. Unknown roles land on
// the learner portal.
var landings = map[string]string{
	session.RoleAdmin:      PathAdminDashboard,
	session.RoleTrainer:    PathTrainerDashboard,
	session.RoleLeadership: PathLeadershipDashboard,
	session.RoleLearner:    PathLearnerDashboard,
}

// ResolveLanding returns the dashboard path for a role. Pure and stable.
func ResolveLanding(role string) string {
	if path, ok := landings[role]; ok {
		return path
	}
	return PathLearnerDashboard
}

// roleGates restricts role-prefixed path groups to the roles that own them.
// Admins may enter the trainer and leadership portals; the learner portal is
// open to any authenticated user (it is the default).
var roleGates = []struct {
	prefix string
	roles  []string
}{
	{PathAdminDashboard, []string{session.RoleAdmin}},
	{"/admin", []string{session.RoleAdmin}},
	{PathTrainerDashboard, []string{session.RoleTrainer, session.RoleAdmin}},
	{"/trainer", []string{session.RoleTrainer, session.RoleAdmin}},
	{PathLeadershipDashboard, []string{session.RoleLeadership, session.RoleAdmin}},
}

// CanAccess reports whether the session may reach path. Without a session
// only the public allowlist is reachable; with one, role-prefixed paths are
// gated to their role and everything else needs only the session.
func CanAccess(path string, sess session.Session) bool {
	if IsPublic(path) {
		return true
	}
	if sess.IsZero() {
		return false
	}
	for _, gate := range roleGates {
		if path == gate.prefix || strings.HasPrefix(path, gate.prefix+"/") {
			return roleAllowed(sess.Role, gate.roles)
		}
	}
	return true
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
