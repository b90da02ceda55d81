// Package service wires the standings pipeline together and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/tabellone/internal/adapters/archive"
	eventqueue "github.com/okian/tabellone/internal/adapters/mq/queue"
	workerpool "github.com/okian/tabellone/internal/adapters/mq/worker"
	"github.com/okian/tabellone/internal/adapters/repository"
	"github.com/okian/tabellone/internal/domain/dedupe"
	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/scoring"
	"github.com/okian/tabellone/internal/domain/sport"
	"github.com/okian/tabellone/internal/domain/standings"
	"github.com/okian/tabellone/internal/domain/types"
	"github.com/okian/tabellone/pkg/logger"
	"github.com/okian/tabellone/pkg/metrics"
)

const stopTimeout = 30 * time.Second

// Service implements the API dependencies for the standings system.
type Service struct {
	mu sync.RWMutex

	store   *repository.TreapStore
	deduper dedupe.Deduper
	queue   *eventqueue.InMemoryQueue
	scorer  scoring.Scorer
	applier *workerpool.Applier
	pool    *workerpool.Pool
	archive *archive.Archive

	workerCount int
	queueSize   int
	dedupeSize  int
	formLength  int
	archivePath string

	started  bool
	replayed int

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10000,
		dedupeSize:  50000,
		formLength:  standings.DefaultFormLength,
		scorer:      scoring.NewTableScorer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the pipeline, replays the archive and starts the workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting standings service...")

	s.store = repository.NewTreapStore(ctx, repository.WithFormLength(s.formLength))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))

	if s.archivePath != "" {
		a, err := archive.Open(ctx, s.archivePath)
		if err != nil {
			_ = s.store.Close()
			return fmt.Errorf("failed to open archive: %w", err)
		}
		s.archive = a
		s.applier = workerpool.NewApplier(s.scorer, s.store, a)
		if err := s.replay(ctx); err != nil {
			_ = a.Close()
			_ = s.store.Close()
			return err
		}
	} else {
		s.applier = workerpool.NewApplier(s.scorer, s.store, nil)
	}

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.applier)
	// Workers outlive ctx so Stop can drain matches already accepted.
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "standings service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Bool("archive", s.archive != nil),
		logger.Int("replayed", s.replayed),
	)
	return nil
}

// replay rebuilds the tables from the archive and seeds the deduper. Matches
// that no longer apply are logged and skipped.
func (s *Service) replay(ctx context.Context) error {
	n, err := s.archive.Replay(ctx, func(m model.Match) error {
		if s.deduper.SeenAndRecord(ctx, m.EventID) {
			return nil
		}
		if err := s.applier.Record(ctx, m); err != nil {
			metrics.RecordArchiveError()
			s.logger.Warn(ctx, "skipping archived match",
				logger.String("event_id", m.EventID),
				logger.Error(err),
			)
			return nil
		}
		metrics.RecordArchiveReplayed()
		return nil
	})
	if err != nil {
		metrics.RecordErrorByComponent("archive", "replay_error")
		return fmt.Errorf("failed to replay archive: %w", err)
	}
	s.replayed = n
	return nil
}

// Stop drains the queue and releases every component.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping standings service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	_ = s.store.Close()
	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			s.logger.Error(ctx, "error closing archive", logger.Error(err))
		}
		s.archive = nil
	}

	s.started = false
	s.logger.Info(ctx, "standings service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	if s.deduper == nil {
		return false
	}
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordMatchDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	if s.deduper == nil {
		return
	}
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits a validated match for asynchronous scoring.
// It fails with ErrNotStarted before Start or after Stop.
func (s *Service) Enqueue(ctx context.Context, m model.Match) error { //nolint:gocritic // hugeParam: matches travel by value
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	if err := s.queue.Enqueue(ctx, m); err != nil {
		s.logger.Debug(ctx, "match not enqueued",
			logger.String("event_id", m.EventID),
			logger.Error(err),
		)
		return err
	}
	return nil
}

// Standings returns a tournament's full table.
func (s *Service) Standings(ctx context.Context, tournamentID string) ([]standings.Standing, error) {
	store, err := s.readStore()
	if err != nil {
		return nil, err
	}
	return store.Standings(ctx, tournamentID)
}

// TopN returns the first n rows of a tournament's table.
func (s *Service) TopN(ctx context.Context, tournamentID string, n int) ([]standings.Standing, error) {
	store, err := s.readStore()
	if err != nil {
		return nil, err
	}
	return store.TopN(ctx, tournamentID, n)
}

// Rank returns a team's row in a tournament.
func (s *Service) Rank(ctx context.Context, tournamentID, team string) (standings.Standing, error) {
	store, err := s.readStore()
	if err != nil {
		return standings.Standing{}, err
	}
	return store.Rank(ctx, tournamentID, team)
}

// Tournaments lists every known tournament.
func (s *Service) Tournaments(ctx context.Context) []types.TournamentSummary {
	store, err := s.readStore()
	if err != nil {
		return []types.TournamentSummary{}
	}
	return store.Tournaments(ctx)
}

// readStore returns the live store. Tables stay readable after Stop.
func (s *Service) readStore() (*repository.TreapStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ScoringSystem describes a sport's rules.
func (s *Service) ScoringSystem(value string) (types.ScoringSummary, error) {
	sp, err := sport.Parse(value)
	if err != nil {
		return types.ScoringSummary{}, err
	}
	return types.NewScoringSummary(sp)
}

// MatchPoints evaluates the rule table for a single outcome.
func (s *Service) MatchPoints(ctx context.Context, o scoring.Outcome) (int, error) {
	res, err := s.scorer.Score(ctx, o)
	if err != nil {
		return 0, err
	}
	return res.Points, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"dedupeSize":      s.dedupeSize,
		"formLength":      s.formLength,
		"archiveEnabled":  s.archivePath != "",
		"replayedMatches": s.replayed,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		tournaments := len(s.store.Tournaments(ctx))
		teams := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["dedupeEntries"] = s.deduper.Size()
		stats["tournaments"] = tournaments
		stats["teams"] = teams
		stats["processedMatches"] = s.pool.Processed()
		stats["failedMatches"] = s.pool.Failed()

		metrics.UpdateTournaments(tournaments)
		metrics.UpdateTeams(teams)
	}
	return stats
}
