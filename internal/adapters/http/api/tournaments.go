package api

import (
	"context"
	"net/http"

	"github.com/okian/tabellone/internal/domain/types"
)

// TournamentsDependencies defines the interface for listing tournaments.
type TournamentsDependencies interface {
	Tournaments(ctx context.Context) []types.TournamentSummary
}

// TournamentsHandler lists tournaments.
type TournamentsHandler struct {
	deps TournamentsDependencies
}

// NewTournamentsHandler creates a new tournaments handler.
func NewTournamentsHandler(deps TournamentsDependencies) *TournamentsHandler {
	return &TournamentsHandler{deps: deps}
}

// HandleList handles GET /tournaments.
func (h *TournamentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Tournaments(r.Context()))
}
