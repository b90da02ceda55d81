package standings

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var badges = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

// Badge returns the medal for the top three positions and the number otherwise.
func Badge(position int) string {
	if b, ok := badges[position]; ok {
		return b
	}
	return strconv.Itoa(position)
}

// FormGlyphs renders the form column compactly, oldest result first.
func FormGlyphs(form []Result) string {
	var b strings.Builder
	for _, r := range form {
		b.WriteString(string(r))
	}
	return b.String()
}

// Render draws rows as a text table. Rows are printed in the order given and
// positions are shown as supplied.
func Render(rows []Standing) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Squadra", "G", "V", "P", "S", "GF", "GS", "DR", "Pt", "Forma")
	for _, r := range rows {
		t.Row(
			Badge(r.Position),
			r.Team,
			strconv.Itoa(r.Played),
			strconv.Itoa(r.Won),
			strconv.Itoa(r.Drawn),
			strconv.Itoa(r.Lost),
			strconv.Itoa(r.GoalsFor),
			strconv.Itoa(r.GoalsAgainst),
			signed(r.GoalDifference),
			strconv.Itoa(r.Points),
			FormGlyphs(r.Form),
		)
	}
	return t.String()
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
