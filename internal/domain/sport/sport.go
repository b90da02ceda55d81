// Package sport defines the closed set of sports a standings table can track.
package sport

import "strings"

// Sport identifies which scoring rules apply to a match.
type Sport string

// Supported sports.
const (
	Calcio Sport = "calcio"
	Basket Sport = "basket"
	Volley Sport = "volley"
	Padel  Sport = "padel"
)

var all = []Sport{Calcio, Basket, Volley, Padel}

// All returns every supported sport in a stable order.
func All() []Sport {
	out := make([]Sport, len(all))
	copy(out, all)
	return out
}

// Parse maps user input to a Sport. Matching ignores case and surrounding space.
// Unknown values fail with *InvalidSportError.
func Parse(value string) (Sport, error) {
	s := Sport(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", &InvalidSportError{Value: value}
	}
	return s, nil
}

// Valid reports whether s is one of the supported sports.
func (s Sport) Valid() bool {
	switch s {
	case Calcio, Basket, Volley, Padel:
		return true
	}
	return false
}

// SetBased reports whether match scores for s count sets rather than goals or points.
func (s Sport) SetBased() bool {
	return s == Volley || s == Padel
}

func (s Sport) String() string { return string(s) }
