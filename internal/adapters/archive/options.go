package archive

import "time"

// Option applies a configuration option to the Archive.
type Option func(*Archive)

// WithClock sets the clock used for the recorded_at column.
func WithClock(now func() time.Time) Option {
	return func(a *Archive) {
		if now != nil {
			a.now = now
		}
	}
}
