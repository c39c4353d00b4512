package hardware

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNoActiveSession    = errors.New("no active session")
	ErrSessionNotFound    = errors.New("session not found")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrGuestNotInSession  = errors.New("guest does not belong to the session")
	ErrGuestInactive      = errors.New("guest is no longer active")
	ErrItemNotFound       = errors.New("hardware item not found")
	ErrItemUnavailable    = errors.New("hardware item unavailable")
	ErrReservationMissing = errors.New("reservation not found")
)
