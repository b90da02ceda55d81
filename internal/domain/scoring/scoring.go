// Package scoring turns match outcomes into standings points.
//
// Point values live in a closed table keyed by sport. Volleyball is the only
// sport whose award depends on the set score; that rule is an explicit special
// case in MatchPoints rather than a generic hook.
package scoring

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/tabellone/internal/domain/sport"
)

// Volleyball league awards.
const (
	volleyDecisiveWinPoints  = 3 // 3-0 or 3-1
	volleyTieBreakWinPoints  = 2 // 3-2
	volleyTieBreakLossPoints = 1 // 2-3
	volleyWinningSets        = 3
)

// Bonus is one labelled outcome pattern and the points it is worth.
type Bonus struct {
	Condition string `json:"condition"`
	Points    int    `json:"points"`
}

// System is the rule set for one sport.
type System struct {
	WinPoints  int     `json:"win_points"`
	DrawPoints int     `json:"draw_points"`
	LossPoints int     `json:"loss_points"`
	Bonuses    []Bonus `json:"bonus_points"`
}

var systems = map[sport.Sport]System{
	sport.Calcio: {WinPoints: 3, DrawPoints: 1, LossPoints: 0},
	sport.Basket: {WinPoints: 2, DrawPoints: 0, LossPoints: 0},
	sport.Volley: {
		WinPoints:  3,
		DrawPoints: 0,
		LossPoints: 0,
		Bonuses: []Bonus{
			{Condition: "Vittoria 3-0 o 3-1", Points: volleyDecisiveWinPoints},
			{Condition: "Vittoria 3-2", Points: volleyTieBreakWinPoints},
			{Condition: "Sconfitta 2-3", Points: volleyTieBreakLossPoints},
		},
	},
	sport.Padel: {WinPoints: 1, DrawPoints: 0, LossPoints: 0},
}

// SystemFor returns the rule set for s. The returned value is a copy.
func SystemFor(s sport.Sport) (System, error) {
	sys, ok := systems[s]
	if !ok {
		return System{}, &sport.InvalidSportError{Value: string(s)}
	}
	sys.Bonuses = slices.Clone(sys.Bonuses)
	return sys, nil
}

// SetScore counts sets won by the scored side (Home) and its opponent (Away).
type SetScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

func (s SetScore) String() string { return fmt.Sprintf("%d-%d", s.Home, s.Away) }

// Outcome is one side's view of a finished match.
type Outcome struct {
	Sport sport.Sport
	Won   bool
	Drawn bool
	Sets  *SetScore
}

// MatchPoints returns the points one side earns for a match.
//
// won and drawn must not both be true. sets is only read for volleyball; for
// other sports it is ignored. A volleyball set score must agree with the
// outcome flags (the winner took more sets, a draw split them evenly).
func MatchPoints(s sport.Sport, won, drawn bool, sets *SetScore) (int, error) {
	sys, ok := systems[s]
	if !ok {
		return 0, &sport.InvalidSportError{Value: string(s)}
	}
	if won && drawn {
		return 0, ErrConflictingOutcome
	}
	if s == sport.Volley && sets != nil {
		if err := checkVolleySets(*sets, won, drawn); err != nil {
			return 0, err
		}
	}

	switch {
	case won:
		if s == sport.Volley && sets != nil {
			switch {
			case sets.Home == volleyWinningSets && sets.Away <= 1:
				return volleyDecisiveWinPoints, nil
			case sets.Home == volleyWinningSets && sets.Away == volleyWinningSets-1:
				return volleyTieBreakWinPoints, nil
			}
		}
		return sys.WinPoints, nil
	case drawn:
		return sys.DrawPoints, nil
	default:
		if s == sport.Volley && sets != nil &&
			sets.Home == volleyWinningSets-1 && sets.Away == volleyWinningSets {
			return volleyTieBreakLossPoints, nil
		}
		return sys.LossPoints, nil
	}
}

func checkVolleySets(sets SetScore, won, drawn bool) error {
	if sets.Home < 0 || sets.Away < 0 {
		return fmt.Errorf("%w: negative sets %s", ErrInvalidSetScore, sets)
	}
	switch {
	case won && sets.Home <= sets.Away:
		return fmt.Errorf("%w: win with sets %s", ErrInvalidSetScore, sets)
	case drawn && sets.Home != sets.Away:
		return fmt.Errorf("%w: draw with sets %s", ErrInvalidSetScore, sets)
	case !won && !drawn && sets.Home >= sets.Away:
		return fmt.Errorf("%w: loss with sets %s", ErrInvalidSetScore, sets)
	}
	return nil
}

// Points evaluates MatchPoints for o.
func (o Outcome) Points() (int, error) {
	return MatchPoints(o.Sport, o.Won, o.Drawn, o.Sets)
}

// Describe renders the Italian summary of a sport's rules, for example
//
//	Vittoria: 3 punti
//	Pareggio: 1 punto
func Describe(s sport.Sport) (string, error) {
	sys, err := SystemFor(s)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Vittoria: %s\n", pointsLabel(sys.WinPoints))
	fmt.Fprintf(&b, "Pareggio: %s", pointsLabel(sys.DrawPoints))
	if len(sys.Bonuses) > 0 {
		b.WriteString("\nBonus:")
		for _, bonus := range sys.Bonuses {
			fmt.Fprintf(&b, "\n- %s: %s", bonus.Condition, pointsLabel(bonus.Points))
		}
	}
	return b.String(), nil
}

// pointsLabel is singular only for exactly one point.
func pointsLabel(n int) string {
	if n == 1 {
		return "1 punto"
	}
	return fmt.Sprintf("%d punti", n)
}

// Result is the score computed for one outcome.
type Result struct {
	Sport  sport.Sport
	Points int
}

// Scorer computes points for an outcome, honoring ctx for cancellation.
type Scorer interface {
	Score(ctx context.Context, in Outcome) (Result, error)
}

// TableScorer implements Scorer over the static rule table.
type TableScorer struct{}

// NewTableScorer returns a Scorer backed by the rule table.
func NewTableScorer() *TableScorer {
	return &TableScorer{}
}

// Score computes the points for in.
func (TableScorer) Score(ctx context.Context, in Outcome) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context cancelled: %w", err)
	}
	pts, err := in.Points()
	if err != nil {
		return Result{}, err
	}
	return Result{Sport: in.Sport, Points: pts}, nil
}
