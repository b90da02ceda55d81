package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/tabellone/internal/domain/scoring"
	"github.com/okian/tabellone/internal/domain/sport"
)

func newDescribeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <sport>",
		Short: "Print the scoring rules of a sport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sport.Parse(args[0])
			if err != nil {
				return err
			}
			text, err := scoring.Describe(s)
			if err != nil {
				return err
			}
			c.log.Debug("describing sport", "sport", s)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newPointsCmd(c *cli) *cobra.Command {
	var (
		won, drawn bool
		sets       string
	)
	cmd := &cobra.Command{
		Use:   "points <sport>",
		Short: "Compute the points one team earns for an outcome",
		Example: `  tabellonectl points calcio --drawn
  tabellonectl points volley --won --sets 3-2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sport.Parse(args[0])
			if err != nil {
				return err
			}
			var score *scoring.SetScore
			if sets != "" {
				if score, err = parseSetScore(sets); err != nil {
					return err
				}
			}
			pts, err := scoring.MatchPoints(s, won, drawn, score)
			if err != nil {
				return err
			}
			c.log.Debug("points computed", "sport", s, "won", won, "drawn", drawn, "sets", sets)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pts)
			return err
		},
	}
	cmd.Flags().BoolVar(&won, "won", false, "The team won")
	cmd.Flags().BoolVar(&drawn, "drawn", false, "The match was drawn")
	cmd.Flags().StringVar(&sets, "sets", "", "Set score from the team's side, as H-A")
	cmd.MarkFlagsMutuallyExclusive("won", "drawn")
	return cmd
}

// parseSetScore reads "H-A", for example "3-2".
func parseSetScore(v string) (*scoring.SetScore, error) {
	h, a, ok := strings.Cut(strings.TrimSpace(v), "-")
	if !ok {
		return nil, fmt.Errorf("invalid set score %q: want H-A", v)
	}
	home, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return nil, fmt.Errorf("invalid set score %q: %w", v, err)
	}
	away, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return nil, fmt.Errorf("invalid set score %q: %w", v, err)
	}
	return &scoring.SetScore{Home: home, Away: away}, nil
}
