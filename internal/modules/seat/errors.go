package seat

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrUnknownSeat        = errors.New("unknown seat")
	ErrSessionNotFound    = errors.New("session not found")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrGuestNotInEvent    = errors.New("guest does not belong to this session")
	ErrGuestInactive      = errors.New("guest is no longer active")
	ErrSeatTaken          = errors.New("seat taken")
	ErrReservationMissing = errors.New("seat reservation not found")
)
