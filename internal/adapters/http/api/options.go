package api

type serverConfig struct {
	maxStandingsLimit int
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

// WithMaxStandingsLimit caps the limit query parameter on standings routes.
func WithMaxStandingsLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxStandingsLimit = n
		}
	}
}
