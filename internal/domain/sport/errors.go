package sport

import (
	"errors"
	"fmt"
)

// ErrInvalidSport is the sentinel matched by every *InvalidSportError.
var ErrInvalidSport = errors.New("invalid sport")

// InvalidSportError reports a sport outside the supported set.
type InvalidSportError struct {
	Value string
}

func (e *InvalidSportError) Error() string {
	return fmt.Sprintf("invalid sport %q: must be one of calcio, basket, volley, padel", e.Value)
}

// Is lets errors.Is(err, ErrInvalidSport) match.
func (e *InvalidSportError) Is(target error) bool {
	return target == ErrInvalidSport
}
