package simulate

import "errors"

// Sentinel errors.
var (
	ErrInvalidConfig    = errors.New("invalid simulation config")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrTimeout          = errors.New("standings did not catch up")
	ErrMismatch         = errors.New("standings mismatch")
)
