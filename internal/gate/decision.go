package gate

import "github.com/spec-kit/access-gate/internal/domain"

// Decision is the outcome of applying authorization policy to a status and
// an optional role requirement.
type Decision int

const (
	DecisionWait Decision = iota
	DecisionDenyUnauthenticated
	DecisionDenyWrongRole
	DecisionAllow
)

// String returns a stable label for logs and metrics.
func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionDenyUnauthenticated:
		return "deny_unauthenticated"
	case DecisionDenyWrongRole:
		return "deny_wrong_role"
	case DecisionAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decide maps an authentication status and an optional required role to a
// Decision. It is a pure function: no state is consulted or retained.
//
// A nil requirement admits any authenticated user. A requirement naming a
// role outside the known set denies permanently; the gate never fails open.
func Decide(status domain.AuthStatus, requirement *domain.Role) Decision {
	switch status.Phase {
	case domain.PhasePending:
		return DecisionWait
	case domain.PhaseUnauthenticated:
		return DecisionDenyUnauthenticated
	case domain.PhaseAuthenticated:
		if requirement == nil {
			return DecisionAllow
		}
		if !requirement.Valid() {
			return DecisionDenyWrongRole
		}
		if status.User == nil || status.User.Role != *requirement {
			return DecisionDenyWrongRole
		}
		return DecisionAllow
	default:
		return DecisionDenyUnauthenticated
	}
}
