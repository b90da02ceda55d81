// Package standings holds a team's row in a league table and the rules that
// order rows against each other.
package standings

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"time"
)

// DefaultFormLength is how many recent results a row keeps.
const DefaultFormLength = 5

// Result is a single match result as shown in the form column.
type Result string

// Results in Italian league notation.
const (
	Win  Result = "V" // vittoria
	Draw Result = "P" // pareggio
	Loss Result = "S" // sconfitta
)

// ResultOf maps outcome flags to a Result.
func ResultOf(won, drawn bool) Result {
	switch {
	case won:
		return Win
	case drawn:
		return Draw
	default:
		return Loss
	}
}

// Standing is one team's row. Form is ordered by match time, oldest first.
type Standing struct {
	Position       int      `json:"position"`
	Team           string   `json:"team"`
	Played         int      `json:"played"`
	Won            int      `json:"won"`
	Drawn          int      `json:"drawn"`
	Lost           int      `json:"lost"`
	GoalsFor       int      `json:"goals_for"`
	GoalsAgainst   int      `json:"goals_against"`
	GoalDifference int      `json:"goal_difference"`
	Points         int      `json:"points"`
	Form           []Result `json:"form"`

	// formAt holds the match time of each Form entry.
	formAt []time.Time
}

// Apply folds one match played at the given time into the row. formLen caps
// the form history; values below one fall back to DefaultFormLength. Results
// arriving out of time order are placed by time; equal times keep arrival order.
func (s *Standing) Apply(r Result, at time.Time, scored, conceded, points, formLen int) {
	if formLen < 1 {
		formLen = DefaultFormLength
	}
	s.Played++
	switch r {
	case Win:
		s.Won++
	case Draw:
		s.Drawn++
	default:
		s.Lost++
	}
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
	s.Points += points

	if len(s.formAt) != len(s.Form) {
		// rows built without times (decoded or literal) count as older
		s.formAt = make([]time.Time, len(s.Form))
	}
	i := sort.Search(len(s.formAt), func(i int) bool { return s.formAt[i].After(at) })
	s.Form = slices.Insert(s.Form, i, r)
	s.formAt = slices.Insert(s.formAt, i, at)
	if over := len(s.Form) - formLen; over > 0 {
		s.Form = slices.Clone(s.Form[over:])
		s.formAt = slices.Clone(s.formAt[over:])
	}
}

// Validate checks the row's arithmetic invariants.
func (s Standing) Validate() error {
	if s.Played != s.Won+s.Drawn+s.Lost {
		return fmt.Errorf("%w: %s played %d, results add up to %d",
			ErrInconsistentStanding, s.Team, s.Played, s.Won+s.Drawn+s.Lost)
	}
	if s.GoalDifference != s.GoalsFor-s.GoalsAgainst {
		return fmt.Errorf("%w: %s goal difference %d, expected %d",
			ErrInconsistentStanding, s.Team, s.GoalDifference, s.GoalsFor-s.GoalsAgainst)
	}
	return nil
}

// Clone returns a read copy that shares no memory with s. The copy drops the
// match times behind Form, so results applied to it count as newer.
func (s Standing) Clone() Standing {
	s.Form = slices.Clone(s.Form)
	s.formAt = nil
	return s
}

// Compare orders rows by points, goal difference and goals for (all
// descending), then by team name.
func Compare(a, b Standing) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalDifference, a.GoalDifference); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalsFor, a.GoalsFor); c != 0 {
		return c
	}
	return cmp.Compare(a.Team, b.Team)
}

// Less reports whether a ranks above b.
func Less(a, b Standing) bool { return Compare(a, b) < 0 }

// Sort orders rows in place and assigns positions from 1.
func Sort(rows []Standing) {
	slices.SortFunc(rows, Compare)
	for i := range rows {
		rows[i].Position = i + 1
	}
}
