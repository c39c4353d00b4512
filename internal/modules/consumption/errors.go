package consumption

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("consumption record not found")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrGuestInactive      = errors.New("guest is no longer active")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product not available")
)
