package domain

import "errors"

// Closed set of error kinds. Usecases wrap these with context via
// fmt.Errorf("...: %w", err); the delivery layer maps each kind to a
// distinct HTTP status instead of pattern-matching messages.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state for requested transition")
	ErrUnauthorized       = errors.New("caller is not a party to this payment")
	ErrVerificationFailed = errors.New("signature verification failed")
	ErrDuplicatePayment   = errors.New("payment already exists for order")
	ErrUpstream           = errors.New("payment gateway failure")
)
