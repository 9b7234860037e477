package game

import "errors"

var (
	ErrExhausted       = errors.New("no numbers left to draw")
	ErrInvalidNumber   = errors.New("number must be between 1 and 75")
	ErrAlreadyDrawn    = errors.New("number already drawn")
	ErrSessionNotFound = errors.New("session not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrTicketExists    = errors.New("ticket already registered")
	ErrPolicyViolation = errors.New("session already has a winner")
	ErrInvalidGrid     = errors.New("invalid ticket grid")
)
