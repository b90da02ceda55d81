package simulate

import (
	"fmt"

	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/standings"
)

// Expected computes the table the service should serve after matches.
func Expected(matches []model.Match, formLen int) ([]standings.Standing, error) {
	rows := make(map[string]*standings.Standing)
	row := func(team string) *standings.Standing {
		r, ok := rows[team]
		if !ok {
			r = &standings.Standing{Team: team}
			rows[team] = r
		}
		return r
	}

	for _, m := range matches {
		home, away := m.Sides()
		hp, err := m.Outcome(true).Points()
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", m.EventID, err)
		}
		ap, err := m.Outcome(false).Points()
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", m.EventID, err)
		}
		row(home.Team).Apply(home.Result, home.At, home.Scored, home.Conceded, hp, formLen)
		row(away.Team).Apply(away.Result, away.At, away.Scored, away.Conceded, ap, formLen)
	}

	out := make([]standings.Standing, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	standings.Sort(out)
	return out, nil
}
