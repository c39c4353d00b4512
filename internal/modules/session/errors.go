package session

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("session not found")
	ErrSlugTaken  = errors.New("slug already used")
	ErrNoActive   = errors.New("no active session")
)
