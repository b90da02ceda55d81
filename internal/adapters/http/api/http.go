// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/tabellone/internal/adapters/mq/queue"
	"github.com/okian/tabellone/internal/adapters/repository"
	"github.com/okian/tabellone/internal/domain/dedupe"
	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/scoring"
	"github.com/okian/tabellone/internal/domain/sport"
	"github.com/okian/tabellone/internal/domain/standings"
	"github.com/okian/tabellone/internal/domain/types"
	"github.com/okian/tabellone/pkg/metrics"
)

const defaultMaxStandingsLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a match for async processing.
	Enqueue(ctx context.Context, m model.Match) error

	Standings(ctx context.Context, tournamentID string) ([]standings.Standing, error)
	TopN(ctx context.Context, tournamentID string, n int) ([]standings.Standing, error)
	Rank(ctx context.Context, tournamentID, team string) (standings.Standing, error)
	Tournaments(ctx context.Context) []types.TournamentSummary

	ScoringSystem(value string) (types.ScoringSummary, error)
	MatchPoints(ctx context.Context, o scoring.Outcome) (int, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	matchesHandler     *MatchesHandler
	standingsHandler   *StandingsHandler
	tournamentsHandler *TournamentsHandler
	scoringHandler     *ScoringHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{maxStandingsLimit: defaultMaxStandingsLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		matchesHandler:     NewMatchesHandler(deps),
		standingsHandler:   NewStandingsHandler(deps, cfg.maxStandingsLimit),
		tournamentsHandler: NewTournamentsHandler(deps),
		scoringHandler:     NewScoringHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /matches", MetricsMiddleware(s.matchesHandler.HandlePostMatch, "matches"))
	mux.HandleFunc("GET /tournaments", MetricsMiddleware(s.tournamentsHandler.HandleList, "tournaments"))
	mux.HandleFunc("GET /standings/{tournament}",
		MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("GET /standings/{tournament}/{team}",
		MetricsMiddleware(s.standingsHandler.HandleGetStanding, "standing"))
	mux.HandleFunc("GET /scoring/{sport}", MetricsMiddleware(s.scoringHandler.HandleGetSystem, "scoring"))
	mux.HandleFunc("POST /scoring/{sport}/points",
		MetricsMiddleware(s.scoringHandler.HandlePostPoints, "scoring_points"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps domain errors onto API kinds.
func classify(err error) error {
	var invalid *sport.InvalidSportError
	switch {
	case errors.As(err, &invalid):
		return ErrInvalidSport
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, model.ErrInvalidMatch),
		errors.Is(err, scoring.ErrConflictingOutcome),
		errors.Is(err, scoring.ErrInvalidSetScore):
		return ErrBadRequest
	case errors.Is(err, queue.ErrQueueFull):
		return ErrBackpressure
	case errors.Is(err, queue.ErrQueueClosed):
		return ErrUnavailable
	}
	return ErrInternal
}

var kindStatus = []struct {
	kind   error
	status int
	code   string
}{
	{ErrInvalidSport, http.StatusBadRequest, "invalid_sport"},
	{ErrBadRequest, http.StatusBadRequest, "bad_request"},
	{ErrNotFound, http.StatusNotFound, "not_found"},
	{ErrBackpressure, http.StatusTooManyRequests, "backpressure"},
	{ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
}

// writeKindError writes err with the status and code of its kind.
// Every invalid sport rejection is counted here, whichever handler made it.
func writeKindError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidSport) {
		metrics.RecordInvalidSport()
	}
	for _, k := range kindStatus {
		if errors.Is(err, k.kind) {
			writeError(w, k.status, k.code, err)
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}

// fail tags a dependency error with op and its kind and writes it.
func fail(w http.ResponseWriter, op string, err error) {
	writeKindError(w, WrapKind(op, classify(err), err))
}
