package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrConflictingOutcome = errors.New("match cannot be both won and drawn")
	ErrInvalidSetScore    = errors.New("invalid set score")
)
