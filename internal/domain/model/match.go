// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/tabellone/internal/domain/scoring"
	"github.com/okian/tabellone/internal/domain/sport"
	"github.com/okian/tabellone/internal/domain/standings"
)

// Match is a finished match submitted by clients.
// For set based sports the scores count sets won.
type Match struct {
	EventID      string      `json:"event_id" msgpack:"event_id"`           // unique id for idempotency
	TournamentID string      `json:"tournament_id" msgpack:"tournament_id"` // standings table the match belongs to
	Sport        sport.Sport `json:"sport" msgpack:"sport"`
	HomeTeam     string      `json:"home_team" msgpack:"home_team"`
	AwayTeam     string      `json:"away_team" msgpack:"away_team"`
	HomeScore    int         `json:"home_score" msgpack:"home_score"`
	AwayScore    int         `json:"away_score" msgpack:"away_score"`
	TS           time.Time   `json:"ts" msgpack:"ts"`
}

// Normalize trims identifiers and canonicalises the sport name.
// An unknown sport is left as given so Validate can report it.
func (m *Match) Normalize() {
	m.EventID = strings.TrimSpace(m.EventID)
	m.TournamentID = strings.TrimSpace(m.TournamentID)
	m.HomeTeam = strings.TrimSpace(m.HomeTeam)
	m.AwayTeam = strings.TrimSpace(m.AwayTeam)
	if s, err := sport.Parse(string(m.Sport)); err == nil {
		m.Sport = s
	}
}

// Validate checks the fields a match needs before it can be scored.
func (m Match) Validate() error {
	switch {
	case m.EventID == "":
		return fmt.Errorf("%w: event_id is required", ErrInvalidMatch)
	case m.TournamentID == "":
		return fmt.Errorf("%w: tournament_id is required", ErrInvalidMatch)
	case m.HomeTeam == "" || m.AwayTeam == "":
		return fmt.Errorf("%w: both teams are required", ErrInvalidMatch)
	case m.HomeTeam == m.AwayTeam:
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidMatch)
	case m.HomeScore < 0 || m.AwayScore < 0:
		return fmt.Errorf("%w: scores must be non-negative", ErrInvalidMatch)
	}
	if !m.Sport.Valid() {
		return &sport.InvalidSportError{Value: string(m.Sport)}
	}
	return nil
}

// Outcome returns the match from one side's point of view.
func (m Match) Outcome(home bool) scoring.Outcome {
	own, other := m.HomeScore, m.AwayScore
	if !home {
		own, other = other, own
	}
	o := scoring.Outcome{
		Sport: m.Sport,
		Won:   own > other,
		Drawn: own == other,
	}
	if m.Sport.SetBased() {
		o.Sets = &scoring.SetScore{Home: own, Away: other}
	}
	return o
}

// Side is one team's share of a scored match.
type Side struct {
	Team     string
	Result   standings.Result
	Scored   int
	Conceded int
	Points   int
	At       time.Time
}

// Sides pairs each team with its result. Points are left for the scorer.
func (m Match) Sides() (home, away Side) {
	ho, ao := m.Outcome(true), m.Outcome(false)
	home = Side{
		Team:     m.HomeTeam,
		Result:   standings.ResultOf(ho.Won, ho.Drawn),
		Scored:   m.HomeScore,
		Conceded: m.AwayScore,
		At:       m.TS,
	}
	away = Side{
		Team:     m.AwayTeam,
		Result:   standings.ResultOf(ao.Won, ao.Drawn),
		Scored:   m.AwayScore,
		Conceded: m.HomeScore,
		At:       m.TS,
	}
	return home, away
}
