package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccessDenied    EventType = "access_denied"
	EventLoginRedirected EventType = "login_redirected"
	EventUserRegistered  EventType = "user_registered"
	EventUserLoggedIn    EventType = "user_logged_in"
)

// Event represents a gate or account event emitted by the service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccessDeniedPayload describes a role-mismatch denial.
type AccessDeniedPayload struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// LoginRedirectedPayload describes a silent redirect to the login view.
type LoginRedirectedPayload struct {
	Path string `json:"path"`
}

// UserRegisteredPayload describes a new account.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// UserLoggedInPayload describes a successful login.
type UserLoggedInPayload struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}
