package catalog

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrProductNotFound  = errors.New("product not found")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameInactive     = errors.New("game is not active")
	ErrSessionNotFound  = errors.New("session not found")
	ErrGuestNotFound    = errors.New("guest not found")
	ErrGuestNotInEvent  = errors.New("guest does not belong to this session")
	ErrMenuDisabled     = errors.New("menu disabled for this session")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrTemplateNotFound = errors.New("meal template not found")
)
