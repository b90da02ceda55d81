package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/tabellone/internal/domain/scoring"
	"github.com/okian/tabellone/internal/domain/sport"
	"github.com/okian/tabellone/internal/domain/types"
)

// ScoringDependencies defines the interface for rule lookups.
type ScoringDependencies interface {
	ScoringSystem(value string) (types.ScoringSummary, error)
	MatchPoints(ctx context.Context, o scoring.Outcome) (int, error)
}

// ScoringHandler exposes the scoring rules.
type ScoringHandler struct {
	deps ScoringDependencies
}

// NewScoringHandler creates a new scoring handler.
func NewScoringHandler(deps ScoringDependencies) *ScoringHandler {
	return &ScoringHandler{deps: deps}
}

type pointsRequest struct {
	Won      bool              `json:"won"`
	Drawn    bool              `json:"drawn"`
	SetScore *scoring.SetScore `json:"set_score,omitempty"`
}

type pointsResponse struct {
	Sport  sport.Sport `json:"sport"`
	Points int         `json:"points"`
}

// HandleGetSystem handles GET /scoring/{sport}.
func (h *ScoringHandler) HandleGetSystem(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_scoring"
	summary, err := h.deps.ScoringSystem(r.PathValue("sport"))
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandlePostPoints handles POST /scoring/{sport}/points.
func (h *ScoringHandler) HandlePostPoints(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_points"
	s, err := sport.Parse(r.PathValue("sport"))
	if err != nil {
		fail(w, op, err)
		return
	}
	var req pointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeKindError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	pts, err := h.deps.MatchPoints(r.Context(), scoring.Outcome{
		Sport: s,
		Won:   req.Won,
		Drawn: req.Drawn,
		Sets:  req.SetScore,
	})
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pointsResponse{Sport: s, Points: pts})
}
