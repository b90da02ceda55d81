package simulate

import (
	"fmt"
	"slices"

	"github.com/okian/tabellone/internal/domain/standings"
)

// Verify compares a served table with the expected one and describes every
// difference.
func Verify(expected, served []standings.Standing) []string {
	var diffs []string
	if len(expected) != len(served) {
		diffs = append(diffs, fmt.Sprintf("expected %d teams, served %d", len(expected), len(served)))
	}
	for i := 0; i < min(len(expected), len(served)); i++ {
		e, s := expected[i], served[i]
		if e.Team != s.Team {
			diffs = append(diffs, fmt.Sprintf("position %d: expected %s, served %s", i+1, e.Team, s.Team))
			continue
		}
		check := func(field string, want, got int) {
			if want != got {
				diffs = append(diffs, fmt.Sprintf("%s %s: expected %d, served %d", e.Team, field, want, got))
			}
		}
		check("position", e.Position, s.Position)
		check("played", e.Played, s.Played)
		check("won", e.Won, s.Won)
		check("drawn", e.Drawn, s.Drawn)
		check("lost", e.Lost, s.Lost)
		check("goals_for", e.GoalsFor, s.GoalsFor)
		check("goals_against", e.GoalsAgainst, s.GoalsAgainst)
		check("points", e.Points, s.Points)
		if !slices.Equal(e.Form, s.Form) {
			diffs = append(diffs, fmt.Sprintf("%s form: expected %s, served %s",
				e.Team, standings.FormGlyphs(e.Form), standings.FormGlyphs(s.Form)))
		}
		if err := s.Validate(); err != nil {
			diffs = append(diffs, err.Error())
		}
	}
	return diffs
}

// played sums the matches a table has absorbed, counted once per match.
func played(rows []standings.Standing) int {
	total := 0
	for _, r := range rows {
		total += r.Played
	}
	return total / 2
}
