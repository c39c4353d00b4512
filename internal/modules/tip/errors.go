package tip

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrSessionNotFound = errors.New("session not found")
	ErrGuestNotFound   = errors.New("guest not found")
	ErrGuestNotInEvent = errors.New("guest does not belong to this session")
)
