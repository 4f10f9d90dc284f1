package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures surfaced to the UI.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindInvalidCredentials
	KindValidation
	KindUnauthorized
	KindNotFound
	KindServer
	KindNetwork
	KindProfileHydration
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindValidation:
		return "validation_error"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server_error"
	case KindNetwork:
		return "network_error"
	case KindProfileHydration:
		return "profile_hydration_failure"
	default:
		return "unexpected"
	}
}

// AuthError is a backend or local failure with a display-ready message.
type AuthError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches on Kind so callers can use errors.Is with the sentinels below.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Status == 0 || t.Status == e.Status)
}

var (
	ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials, Message: "invalid email or password"}
	ErrValidation         = &AuthError{Kind: KindValidation, Message: "invalid data"}
	ErrUnauthorized       = &AuthError{Kind: KindUnauthorized, Message: "access not authorized"}
	ErrNotFound           = &AuthError{Kind: KindNotFound, Message: "resource not found"}
	ErrServer             = &AuthError{Kind: KindServer, Message: "internal server error"}
	ErrNetwork            = &AuthError{Kind: KindNetwork, Message: "could not connect to the server"}
	ErrProfileHydration   = &AuthError{Kind: KindProfileHydration, Message: "could not load user profile"}
)

// ErrSubmitInProgress is returned when a login or register is already
// pending for the same session.
var ErrSubmitInProgress = errors.New("a request is already being submitted")

// ErrInvalidReservation is returned for reservation dates that cannot be booked.
var ErrInvalidReservation = errors.New("return date must be after the rental date")

// StatusMessage is the total status → message mapping shown to users.
func StatusMessage(status int) string {
	switch status {
	case 0:
		return ErrNetwork.Message
	case http.StatusBadRequest:
		return ErrValidation.Message
	case http.StatusUnauthorized:
		return ErrInvalidCredentials.Message
	case http.StatusForbidden:
		return ErrUnauthorized.Message
	case http.StatusNotFound:
		return ErrNotFound.Message
	case http.StatusInternalServerError:
		return ErrServer.Message
	default:
		return fmt.Sprintf("Error: %d", status)
	}
}

// KindForStatus classifies a backend HTTP status.
func KindForStatus(status int) ErrorKind {
	switch status {
	case 0:
		return KindNetwork
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindInvalidCredentials
	case http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusInternalServerError:
		return KindServer
	default:
		return KindUnexpected
	}
}

// NewStatusError builds the AuthError for a backend status. The backend's own
// detail is kept as the cause; the message is always the fixed one.
func NewStatusError(status int, detail string, cause error) *AuthError {
	if cause == nil && detail != "" {
		cause = errors.New(detail)
	}
	return &AuthError{Kind: KindForStatus(status), Status: status, Message: StatusMessage(status), Err: cause}
}

// NewValidationError reports a locally rejected form.
func NewValidationError(detail string) *AuthError {
	return &AuthError{Kind: KindValidation, Status: http.StatusBadRequest, Message: detail}
}

// DisplayMessage returns the message to render for any error.
func DisplayMessage(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "an unexpected error occurred"
}
