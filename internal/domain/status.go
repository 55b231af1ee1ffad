package domain

// AuthPhase enumerates the resolution states of a session check.
type AuthPhase string

const (
	PhasePending         AuthPhase = "PENDING"
	PhaseUnauthenticated AuthPhase = "UNAUTHENTICATED"
	PhaseAuthenticated   AuthPhase = "AUTHENTICATED"
)

// AuthStatus is a snapshot of the current session: still resolving, no valid
// session, or an authenticated identity. User is set only when the phase is
// PhaseAuthenticated.
type AuthStatus struct {
	Phase AuthPhase
	User  *User
}

// StatusPending reports a session check that has not resolved yet.
func StatusPending() AuthStatus {
	return AuthStatus{Phase: PhasePending}
}

// StatusUnauthenticated reports the absence of a valid session.
func StatusUnauthenticated() AuthStatus {
	return AuthStatus{Phase: PhaseUnauthenticated}
}

// StatusAuthenticated reports a resolved identity. A nil user is coerced to
// unauthenticated so callers can never observe an authenticated status
// without an identity.
func StatusAuthenticated(user *User) AuthStatus {
	if user == nil {
		return StatusUnauthenticated()
	}
	return AuthStatus{Phase: PhaseAuthenticated, User: user}
}

// Equal reports whether two snapshots describe the same observation. Two
// authenticated snapshots are equal only when they name the same user with
// the same role, so a mid-session role change counts as a new transition.
func (s AuthStatus) Equal(other AuthStatus) bool {
	if s.Phase != other.Phase {
		return false
	}
	if s.Phase != PhaseAuthenticated {
		return true
	}
	if s.User == nil || other.User == nil {
		return s.User == other.User
	}
	return s.User.ID == other.User.ID && s.User.Role == other.User.Role
}
