package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/tabellone/internal/domain/dedupe"
	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/sport"
)

// MatchDependencies defines the interface for match ingestion.
type MatchDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, m model.Match) error
}

// MatchesHandler handles match submissions.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// matchRequest mirrors the OpenAPI schema for POST /matches.
type matchRequest struct {
	EventID      string `json:"event_id"`
	TournamentID string `json:"tournament_id"`
	Sport        string `json:"sport"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	HomeScore    *int   `json:"home_score"`
	AwayScore    *int   `json:"away_score"`
	TS           string `json:"ts"`
}

func (r matchRequest) toMatch() (model.Match, error) {
	switch {
	case r.HomeScore == nil || r.AwayScore == nil:
		return model.Match{}, errors.New("missing home_score or away_score")
	case strings.TrimSpace(r.TS) == "":
		return model.Match{}, errors.New("missing ts")
	}
	ts, err := time.Parse(time.RFC3339, r.TS)
	if err != nil {
		return model.Match{}, errors.New("invalid ts; must be RFC3339")
	}
	m := model.Match{
		EventID:      r.EventID,
		TournamentID: r.TournamentID,
		Sport:        sport.Sport(r.Sport),
		HomeTeam:     r.HomeTeam,
		AwayTeam:     r.AwayTeam,
		HomeScore:    *r.HomeScore,
		AwayScore:    *r.AwayScore,
		TS:           ts.UTC(),
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		return model.Match{}, err
	}
	return m, nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostMatch handles POST /matches requests.
func (h *MatchesHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match"

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeKindError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	m, err := req.toMatch()
	if err != nil {
		var invalid *sport.InvalidSportError
		if errors.As(err, &invalid) {
			writeKindError(w, WrapKind(op, ErrInvalidSport, err))
			return
		}
		writeKindError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check: mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), m.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	if err := h.deps.Enqueue(r.Context(), m); err != nil {
		// Rollback the "seen" status since enqueue failed.
		h.deps.Unrecord(r.Context(), m.EventID)
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
