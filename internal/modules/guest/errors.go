package guest

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session not accepting registrations")
	ErrGuestNotFound   = errors.New("guest not found")
	ErrGuestExists     = errors.New("guest with this name already registered")
	ErrGuestNotInEvent = errors.New("guest does not belong to this session")
	ErrGuestInactive   = errors.New("guest is no longer active")
)
