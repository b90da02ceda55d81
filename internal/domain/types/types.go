// Package types contains read shapes shared by the service and its API.
package types

import (
	"github.com/okian/tabellone/internal/domain/scoring"
	"github.com/okian/tabellone/internal/domain/sport"
)

// TournamentSummary describes one standings table.
type TournamentSummary struct {
	ID      string      `json:"id"`
	Sport   sport.Sport `json:"sport"`
	Teams   int         `json:"teams"`
	Matches int         `json:"matches"`
	Leader  string      `json:"leader,omitempty"`
}

// ScoringSummary is a sport's rule set together with its Italian description.
type ScoringSummary struct {
	Sport       sport.Sport    `json:"sport"`
	System      scoring.System `json:"system"`
	Description string         `json:"description"`
}

// NewScoringSummary builds the summary for s.
func NewScoringSummary(s sport.Sport) (ScoringSummary, error) {
	sys, err := scoring.SystemFor(s)
	if err != nil {
		return ScoringSummary{}, err
	}
	desc, err := scoring.Describe(s)
	if err != nil {
		return ScoringSummary{}, err
	}
	return ScoringSummary{Sport: s, System: sys, Description: desc}, nil
}
