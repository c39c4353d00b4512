package auth

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPendingApproval    = errors.New("account waiting for approval")
	ErrRejected           = errors.New("account rejected")
	ErrUserNotFound       = errors.New("user not found")
)
