package costs

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrGuestNotFound   = errors.New("guest not found")
)
