package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/sport"
	"github.com/okian/tabellone/internal/domain/standings"
	"github.com/okian/tabellone/internal/domain/types"
	"github.com/okian/tabellone/pkg/metrics"
)

// table is one tournament's standings.
type table struct {
	sport   sport.Sport
	root    *node
	rows    map[string]*standings.Standing
	matches int
}

func newTable(s sport.Sport) *table {
	return &table{sport: s, rows: make(map[string]*standings.Standing)}
}

func (t *table) apply(side model.Side, formLen int) {
	row, ok := t.rows[side.Team]
	if ok {
		t.root = remove(t.root, keyOf(row))
	} else {
		row = &standings.Standing{Team: side.Team}
		t.rows[side.Team] = row
	}
	row.Apply(side.Result, side.At, side.Scored, side.Conceded, side.Points, formLen)
	t.root = insert(t.root, keyOf(row))
}

// snapshot copies the first limit rows with their positions.
func (t *table) snapshot(limit int) []standings.Standing {
	teams := make([]string, 0, min(limit, len(t.rows)))
	collect(t.root, limit, &teams)
	out := make([]standings.Standing, len(teams))
	for i, team := range teams {
		out[i] = t.rows[team].Clone()
		out[i].Position = i + 1
	}
	return out
}

// TreapStore is an in-memory Store holding a treap per tournament.
type TreapStore struct {
	mu                    sync.RWMutex
	tables                map[string]*table
	formLength            int
	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

var _ Store = (*TreapStore)(nil)

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		tables:                make(map[string]*table),
		formLength:            standings.DefaultFormLength,
		metricsUpdateInterval: metrics.RefreshInterval(),
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background metrics updater.
func (s *TreapStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// RecordMatch implements Store.
func (s *TreapStore) RecordMatch(ctx context.Context, rec MatchRecord) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	if rec.TournamentID == "" || rec.Home.Team == "" || rec.Away.Team == "" {
		return fmt.Errorf("%w: tournament and teams are required", model.ErrInvalidMatch)
	}
	if rec.Home.Team == rec.Away.Team {
		return fmt.Errorf("%w: a team cannot play itself", model.ErrInvalidMatch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[rec.TournamentID]
	if !ok {
		t = newTable(rec.Sport)
		s.tables[rec.TournamentID] = t
	} else if t.sport != rec.Sport {
		metrics.RecordErrorByComponent("repository", "sport_mismatch")
		return fmt.Errorf("%w: %s plays %s, got %s", ErrSportMismatch, rec.TournamentID, t.sport, rec.Sport)
	}
	t.apply(rec.Home, s.formLength)
	t.apply(rec.Away, s.formLength)
	t.matches++
	return nil
}

// Standings implements Store.
func (s *TreapStore) Standings(ctx context.Context, tournamentID string) ([]standings.Standing, error) {
	defer s.observeQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tournamentID]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t.snapshot(len(t.rows)), nil
}

// TopN implements Store.
func (s *TreapStore) TopN(ctx context.Context, tournamentID string, n int) ([]standings.Standing, error) {
	defer s.observeQuery(time.Now())

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tournamentID]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t.snapshot(n), nil
}

// Rank implements Store in O(log n).
func (s *TreapStore) Rank(ctx context.Context, tournamentID, team string) (standings.Standing, error) {
	defer s.observeQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[tournamentID]
	if !ok {
		return standings.Standing{}, ErrTournamentNotFound
	}
	row, ok := t.rows[team]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return standings.Standing{}, ErrNotFound
	}
	out := row.Clone()
	out.Position = position(t.root, keyOf(row))
	return out, nil
}

// Tournaments implements Store.
func (s *TreapStore) Tournaments(ctx context.Context) []types.TournamentSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.TournamentSummary, 0, len(s.tables))
	for id, t := range s.tables {
		sum := types.TournamentSummary{ID: id, Sport: t.sport, Teams: len(t.rows), Matches: t.matches}
		var leader []string
		collect(t.root, 1, &leader)
		if len(leader) == 1 {
			sum.Leader = leader[0]
		}
		out = append(out, sum)
	}
	slices.SortFunc(out, func(a, b types.TournamentSummary) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Count implements Store.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.tables {
		n += len(t.rows)
	}
	return n
}

func (s *TreapStore) observeQuery(start time.Time) {
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
}

// startMetricsUpdater refreshes the tournament and team gauges periodically.
func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics(ctx)
			}
		}
	}()
}

func (s *TreapStore) updateMetrics(ctx context.Context) {
	s.mu.RLock()
	tournaments := len(s.tables)
	s.mu.RUnlock()
	metrics.UpdateTournaments(tournaments)
	metrics.UpdateTeams(s.Count(ctx))
}
