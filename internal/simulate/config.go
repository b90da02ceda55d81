package simulate

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/okian/tabellone/internal/domain/sport"
)

// Defaults for a season run.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
	DefaultWait    = 30 * time.Second
)

// Config holds the parameters of one simulated season.
type Config struct {
	BaseURL      string        // Base URL of the service
	TournamentID string        // Tournament the matches are recorded under
	Sport        sport.Sport   // Sport of the tournament
	Teams        []string      // Participating teams
	DoubleRound  bool          // Play a return leg
	Workers      int           // Concurrent submitters
	Timeout      time.Duration // HTTP request timeout
	Wait         time.Duration // How long to wait for the pipeline to catch up
	FormLength   int           // Form length configured on the service
	Seed         uint64        // Seed for score generation
	Logger       *log.Logger   // Progress output
}

func (c *Config) normalize() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TournamentID == "" {
		return fmt.Errorf("%w: tournament id is required", ErrInvalidConfig)
	}
	s, err := sport.Parse(string(c.Sport))
	if err != nil {
		return err
	}
	c.Sport = s
	if len(c.Teams) < 2 {
		return fmt.Errorf("%w: at least two teams are required, got %d", ErrInvalidConfig, len(c.Teams))
	}
	seen := make(map[string]struct{}, len(c.Teams))
	for _, t := range c.Teams {
		if t == "" {
			return fmt.Errorf("%w: empty team name", ErrInvalidConfig)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: team %q listed twice", ErrInvalidConfig, t)
		}
		seen[t] = struct{}{}
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Wait <= 0 {
		c.Wait = DefaultWait
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return nil
}
