package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for standings store errors.
var (
	ErrNotFound           = errors.New("team not found")
	ErrTournamentNotFound = fmt.Errorf("%w: unknown tournament", ErrNotFound)
	ErrInvalidLimit       = errors.New("invalid standings limit")
	ErrSportMismatch      = errors.New("tournament already plays a different sport")
)
