package simulate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/standings"
)

const pollInterval = 100 * time.Millisecond

// Report summarises a season run.
type Report struct {
	Matches   int
	Accepted  int
	Duplicate int
	Rejected  int
	Duration  time.Duration
	Standings []standings.Standing
	Diffs     []string
}

// Run generates a season, submits it, waits for the service to apply every
// accepted match and verifies the served table. It returns ErrMismatch when
// the tables disagree; the report is returned either way.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := cfg.Logger
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	rounds := Schedule(cfg.Teams, cfg.DoubleRound)
	matches := Generate(cfg.TournamentID, cfg.Sport, rounds, cfg.Seed)
	log.Info("season generated", "tournament", cfg.TournamentID, "sport", cfg.Sport,
		"teams", len(cfg.Teams), "rounds", len(rounds), "matches", len(matches))

	report := &Report{Matches: len(matches)}
	accepted := submitAll(ctx, cfg, client, matches, report)
	log.Info("matches submitted", "accepted", report.Accepted, "duplicate", report.Duplicate,
		"rejected", report.Rejected)

	expected, err := Expected(accepted, cfg.FormLength)
	if err != nil {
		return report, err
	}

	served, err := waitForStandings(ctx, client, cfg, len(accepted))
	report.Standings = served
	report.Duration = time.Since(start)
	if err != nil {
		return report, err
	}

	report.Diffs = Verify(expected, served)
	if len(report.Diffs) > 0 {
		return report, fmt.Errorf("%w: %d differences", ErrMismatch, len(report.Diffs))
	}
	log.Info("standings verified", "teams", len(served), "duration", report.Duration)
	return report, nil
}

// submitAll posts matches with cfg.Workers concurrent submitters and returns
// the ones the service accepted.
func submitAll(ctx context.Context, cfg Config, client *Client, matches []model.Match, report *Report) []model.Match {
	var (
		accepted, duplicate, rejected int64
		mu                            sync.Mutex
		wg                            sync.WaitGroup
	)
	applied := make([]model.Match, 0, len(matches))
	ch := make(chan model.Match, cfg.Workers*2)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range ch {
				res, err := client.Submit(ctx, m)
				switch res {
				case Accepted:
					atomic.AddInt64(&accepted, 1)
					mu.Lock()
					applied = append(applied, m)
					mu.Unlock()
				case Duplicate:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&rejected, 1)
					cfg.Logger.Warn("match rejected", "event_id", m.EventID, "home", m.HomeTeam,
						"away", m.AwayTeam, "err", err)
				}
			}
		}()
	}

	func() {
		defer close(ch)
		for _, m := range matches {
			select {
			case <-ctx.Done():
				return
			case ch <- m:
			}
		}
	}()
	wg.Wait()

	report.Accepted = int(accepted)
	report.Duplicate = int(duplicate)
	report.Rejected = int(rejected)
	return applied
}

// waitForStandings polls until the served table has absorbed want matches.
func waitForStandings(ctx context.Context, client *Client, cfg Config, want int) ([]standings.Standing, error) {
	if want == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Wait)
	defer cancel()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var last []standings.Standing
	for {
		rows, err := client.Standings(ctx, cfg.TournamentID)
		switch {
		case err == nil:
			last = rows
			if played(rows) >= want {
				return rows, nil
			}
		case !errors.Is(err, ErrUnexpectedStatus):
			if ctx.Err() == nil {
				return last, err
			}
		}
		select {
		case <-ctx.Done():
			return last, fmt.Errorf("%w: %d of %d matches applied", ErrTimeout, played(last), want)
		case <-ticker.C:
		}
	}
}
