// Package repository keeps the live standings tables, one per tournament.
package repository

import (
	"context"

	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/sport"
	"github.com/okian/tabellone/internal/domain/standings"
	"github.com/okian/tabellone/internal/domain/types"
)

// MatchRecord is a scored match ready to be folded into a table.
// Home and Away carry the points each side earned.
type MatchRecord struct {
	TournamentID string
	Sport        sport.Sport
	Home         model.Side
	Away         model.Side
}

// Store provides read/write access to the standings tables.
type Store interface {
	// RecordMatch updates both sides of a match atomically. The first match
	// of a tournament fixes its sport; later matches must use the same one.
	RecordMatch(ctx context.Context, rec MatchRecord) error

	// Standings returns the full table in rank order.
	Standings(ctx context.Context, tournamentID string) ([]standings.Standing, error)

	// TopN returns at most n rows in rank order.
	TopN(ctx context.Context, tournamentID string, n int) ([]standings.Standing, error)

	// Rank returns a single team's row with its position.
	// Returns ErrNotFound if the team or tournament is unknown.
	Rank(ctx context.Context, tournamentID, team string) (standings.Standing, error)

	// Tournaments lists every table ordered by id.
	Tournaments(ctx context.Context) []types.TournamentSummary

	// Count returns the number of teams across all tables.
	Count(ctx context.Context) int
}
