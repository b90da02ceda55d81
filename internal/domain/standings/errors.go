package standings

import "errors"

// ErrInconsistentStanding reports a row whose counters disagree.
var ErrInconsistentStanding = errors.New("inconsistent standing")
