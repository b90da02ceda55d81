package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/tabellone/internal/adapters/repository"
	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/scoring"
	"github.com/okian/tabellone/pkg/metrics"
)

// Recorder folds scored matches into the standings.
type Recorder interface {
	RecordMatch(ctx context.Context, rec repository.MatchRecord) error
}

// Archiver persists applied matches.
type Archiver interface {
	Append(ctx context.Context, m model.Match) error
}

// Applier scores a match for both sides and records it. Workers and the
// start-up replay share it so both paths produce identical tables.
type Applier struct {
	scorer   scoring.Scorer
	recorder Recorder
	archive  Archiver
}

// NewApplier builds an Applier. archive may be nil.
func NewApplier(scorer scoring.Scorer, recorder Recorder, archive Archiver) *Applier {
	return &Applier{scorer: scorer, recorder: recorder, archive: archive}
}

// Apply scores, records and archives m.
// The standings are updated even when only the archive append fails.
func (a *Applier) Apply(ctx context.Context, m model.Match) error { //nolint:gocritic // hugeParam: matches travel by value
	if err := a.Record(ctx, m); err != nil {
		return err
	}
	if a.archive == nil {
		return nil
	}
	if err := a.archive.Append(ctx, m); err != nil {
		metrics.RecordArchiveError()
		metrics.RecordErrorByComponent("archive", "append_error")
		return fmt.Errorf("%w: %s: %w", ErrArchive, m.EventID, err)
	}
	metrics.RecordArchiveAppend()
	return nil
}

// Record scores m and records it without archiving.
func (a *Applier) Record(ctx context.Context, m model.Match) error { //nolint:gocritic // hugeParam: matches travel by value
	home, away := m.Sides()

	scoreStart := time.Now()
	homeRes, err := a.scorer.Score(ctx, m.Outcome(true))
	if err == nil {
		var awayRes scoring.Result
		awayRes, err = a.scorer.Score(ctx, m.Outcome(false))
		home.Points, away.Points = homeRes.Points, awayRes.Points
	}
	metrics.RecordScoringLatency(float64(time.Since(scoreStart).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordMatchRejected("scoring_error")
		metrics.RecordErrorByComponent("worker", "scoring_error")
		return fmt.Errorf("failed to score match %s: %w", m.EventID, err)
	}

	err = a.recorder.RecordMatch(ctx, repository.MatchRecord{
		TournamentID: m.TournamentID,
		Sport:        m.Sport,
		Home:         home,
		Away:         away,
	})
	if err != nil {
		reason := "store_error"
		if errors.Is(err, repository.ErrSportMismatch) {
			reason = "sport_mismatch"
		}
		metrics.RecordMatchRejected(reason)
		metrics.RecordErrorByComponent("worker", reason)
		return fmt.Errorf("standings update failed for match %s: %w", m.EventID, err)
	}

	metrics.RecordMatchRecorded(m.Sport.String())
	metrics.RecordPointsAwarded(m.Sport.String(), string(home.Result), home.Points)
	metrics.RecordPointsAwarded(m.Sport.String(), string(away.Result), away.Points)
	return nil
}
