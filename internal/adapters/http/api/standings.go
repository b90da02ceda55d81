package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/tabellone/internal/domain/standings"
)

// StandingsDependencies defines the interface for standings reads.
type StandingsDependencies interface {
	Standings(ctx context.Context, tournamentID string) ([]standings.Standing, error)
	TopN(ctx context.Context, tournamentID string, n int) ([]standings.Standing, error)
	Rank(ctx context.Context, tournamentID, team string) (standings.Standing, error)
}

// StandingsHandler serves standings tables.
type StandingsHandler struct {
	deps     StandingsDependencies
	maxLimit int
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies, maxLimit int) *StandingsHandler {
	return &StandingsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetStandings handles GET /standings/{tournament}?limit=N&format=text.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_standings"
	tournament := r.PathValue("tournament")

	var (
		rows []standings.Standing
		err  error
	)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, convErr := strconv.Atoi(limitStr)
		if convErr != nil || n < 1 {
			writeKindError(w, WrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer")))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded",
				WrapKind(op, ErrBadRequest, fmt.Errorf("limit must not exceed %d", h.maxLimit)))
			return
		}
		rows, err = h.deps.TopN(r.Context(), tournament, n)
	} else {
		rows, err = h.deps.Standings(r.Context(), tournament)
	}
	if err != nil {
		fail(w, op, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(standings.Render(rows) + "\n"))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleGetStanding handles GET /standings/{tournament}/{team}.
func (h *StandingsHandler) HandleGetStanding(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_standing"
	row, err := h.deps.Rank(r.Context(), r.PathValue("tournament"), r.PathValue("team"))
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
