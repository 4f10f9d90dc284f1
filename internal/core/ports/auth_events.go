package ports

import (
	"context"
	"time"
)

// AuthEventType names a session transition worth auditing.
type AuthEventType string

const (
	EventLoginSucceeded  AuthEventType = "login_succeeded"
	EventLoginFailed     AuthEventType = "login_failed"
	EventProfileFallback AuthEventType = "profile_fallback"
	EventRegistered      AuthEventType = "registered"
	EventRegisterFailed  AuthEventType = "register_failed"
	EventLogout          AuthEventType = "logout"
	EventForcedLogout    AuthEventType = "forced_logout"
)

// AuthEvent is one audited session transition.
type AuthEvent struct {
	Type      AuthEventType `json:"type"`
	ClientID  string        `json:"-"`
	Email     string        `json:"email,omitempty"`
	Role      string        `json:"role,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// AuthEventRepository persists audit events.
type AuthEventRepository interface {
	InsertEvent(ctx context.Context, event *AuthEvent) error
	// Recent returns the newest events first.
	Recent(ctx context.Context, limit int) ([]*AuthEvent, error)
}

// AuthEventRecorder accepts events without blocking the caller.
type AuthEventRecorder interface {
	Record(event AuthEvent)
}
