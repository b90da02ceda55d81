package repository

import (
	"time"

	"github.com/okian/tabellone/internal/domain/standings"
)

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *TreapStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithFormLength sets how many recent results each row keeps.
func WithFormLength(n int) Option {
	return func(s *TreapStore) {
		if n > 0 {
			s.formLength = n
		} else {
			s.formLength = standings.DefaultFormLength
		}
	}
}
