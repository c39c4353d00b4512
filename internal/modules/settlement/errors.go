package settlement

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrSessionNotFound    = errors.New("session not found")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrGuestNotInSession  = errors.New("guest does not belong to this session")
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrNotFinalized       = errors.New("settlement not finalized")
	ErrNoBankAccount      = errors.New("no bank account configured")
	ErrNothingToPay       = errors.New("nothing to pay")
	ErrSymbolTaken        = errors.New("variable symbol already used in this session")
)
