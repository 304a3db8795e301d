package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Roles
const (
	RoleLearner    = "learner"
	RoleTrainer    = "trainer"
	RoleAdmin      = "admin"
	RoleLeadership = "leadership"
)

var AllRoles = []string{RoleLearner, RoleTrainer, RoleAdmin, RoleLeadership}

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Session is the client-held proof of authentication plus the role/profile
// fields every page reads on mount. Exactly one is active per client; it is
// written only by the login, logout and registration flows.
type Session struct {
	Token       string `json:"token"`
	Role        string `json:"userRole"`
	UserID      string `json:"userId"`
	Email       string `json:"userEmail"`
	DisplayName string `json:"userName"`
	Remember    bool   `json:"rememberMe,omitempty"`
}

func (s Session) IsZero() bool { return s.Token == "" }

func (s Session) IsAdmin() bool      { return s.Role == RoleAdmin }
func (s Session) IsTrainer() bool    { return s.Role == RoleTrainer }
func (s Session) IsLeadership() bool { return s.Role == RoleLeadership }

// TokenExpired reports whether the bearer token carries an exp claim in the
// past. The signature is not verified; the client has no key and the server
// remains the authority. The token is otherwise opaque; anything that does
// not parse as a JWT never goes stale client-side.
func (s Session) TokenExpired(now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"]
	if !ok {
		return false // tokens without exp never go stale client-side
	}
	sec, ok := exp.(float64)
	if !ok {
		return true
	}
	return now.After(time.Unix(int64(sec), 0))
}

// Store holds the single active Session across reloads.
//
// Set observes-after-return semantics: a Get anywhere in the process after
// Set returns sees the new value. Get never errors outward; unreadable or
// expired storage reads as absent. Clear is used by logout and by callers
// reacting to an authentication failure.
type Store interface {
	Set(Session) error
	Get() (Session, bool)
	Clear() error
}
