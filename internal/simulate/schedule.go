// Package simulate plays a round-robin season against a running service and
// checks the served standings against a table computed locally.
package simulate

// Fixture is one scheduled pairing.
type Fixture struct {
	Round int
	Home  string
	Away  string
}

// Schedule returns a round-robin schedule using the circle method. Every team
// meets every other team once per leg; with double set, a second leg repeats
// the first with home and away swapped. An odd team count gives each team one
// bye per leg.
func Schedule(teams []string, double bool) [][]Fixture {
	if len(teams) < 2 {
		return nil
	}
	ring := make([]string, len(teams), len(teams)+1)
	copy(ring, teams)
	if len(ring)%2 != 0 {
		ring = append(ring, "") // bye
	}
	n := len(ring)

	first := make([][]Fixture, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make([]Fixture, 0, n/2)
		for j := 0; j < n/2; j++ {
			home, away := ring[j], ring[n-1-j]
			if home == "" || away == "" {
				continue
			}
			// Alternate the fixed team's venue so home games spread out.
			if j == 0 && r%2 == 1 {
				home, away = away, home
			}
			round = append(round, Fixture{Round: r + 1, Home: home, Away: away})
		}
		first = append(first, round)

		// Rotate every team except the first.
		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}
	if !double {
		return first
	}

	second := make([][]Fixture, len(first))
	for i, round := range first {
		swapped := make([]Fixture, len(round))
		for j, f := range round {
			swapped[j] = Fixture{Round: f.Round + len(first), Home: f.Away, Away: f.Home}
		}
		second[i] = swapped
	}
	return append(first, second...)
}
