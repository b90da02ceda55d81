package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/sport"
	"github.com/okian/tabellone/internal/simulate"
)

func newSubmitCmd(c *cli) *cobra.Command {
	var (
		m       model.Match
		sportIn string
		ts      string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a finished match to the service",
		Example: `  tabellonectl submit --tournament serie-a --sport calcio \
    --home Roma --away Lazio --home-score 2 --away-score 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m.Sport = sport.Sport(sportIn)
			if m.EventID == "" {
				m.EventID = uuid.NewString()
			}
			m.TS = time.Now().UTC()
			if ts != "" {
				parsed, err := time.Parse(time.RFC3339, ts)
				if err != nil {
					return fmt.Errorf("invalid --ts %q: must be RFC3339", ts)
				}
				m.TS = parsed
			}
			m.Normalize()
			if err := m.Validate(); err != nil {
				return err
			}

			res, err := c.client().Submit(cmd.Context(), m)
			if err != nil {
				return err
			}
			c.log.Info("match submitted", "event_id", m.EventID, "result", res)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), m.EventID, res)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&m.EventID, "event-id", "", "Idempotency key (default: a random UUID)")
	f.StringVar(&m.TournamentID, "tournament", "", "Tournament id")
	f.StringVar(&sportIn, "sport", "", "Sport: calcio, basket, volley or padel")
	f.StringVar(&m.HomeTeam, "home", "", "Home team")
	f.StringVar(&m.AwayTeam, "away", "", "Away team")
	f.IntVar(&m.HomeScore, "home-score", 0, "Home score (sets won for volley and padel)")
	f.IntVar(&m.AwayScore, "away-score", 0, "Away score (sets won for volley and padel)")
	f.StringVar(&ts, "ts", "", "Kick-off time in RFC3339 (default: now)")
	for _, name := range []string{"tournament", "sport", "home", "away"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newStandingsCmd(c *cli) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "standings <tournament>",
		Short: "Print the standings table of a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.client().RenderedStandings(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the top N teams")
	return cmd
}

func newSimulateCmd(c *cli) *cobra.Command {
	var (
		cfg     simulate.Config
		sportIn string
		teams   string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a round-robin season against the service and verify the table",
		Example: `  tabellonectl simulate --tournament superlega --sport volley \
    --teams Modena,Trento,Perugia,Civitanova --double`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.BaseURL = c.host
			cfg.Timeout = c.timeout
			cfg.Sport = sport.Sport(sportIn)
			cfg.Teams = splitTeams(teams)
			cfg.Logger = c.log

			report, err := simulate.Run(cmd.Context(), cfg)
			if report != nil {
				for _, d := range report.Diffs {
					c.log.Error("standings differ", "diff", d)
				}
			}
			if err != nil {
				if errors.Is(err, simulate.ErrMismatch) || errors.Is(err, simulate.ErrTimeout) {
					c.log.Error("season verification failed", "err", err)
				}
				return err
			}

			text, err := c.client().RenderedStandings(cmd.Context(), cfg.TournamentID, 0)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.TournamentID, "tournament", "", "Tournament id")
	f.StringVar(&sportIn, "sport", "calcio", "Sport: calcio, basket, volley or padel")
	f.StringVar(&teams, "teams", "", "Comma separated team names")
	f.BoolVar(&cfg.DoubleRound, "double", false, "Play a return leg")
	f.IntVar(&cfg.Workers, "workers", simulate.DefaultWorkers, "Concurrent submitters")
	f.DurationVar(&cfg.Wait, "wait", simulate.DefaultWait, "How long to wait for the service to apply the season")
	f.IntVar(&cfg.FormLength, "form-length", 5, "Form length configured on the service")
	f.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "Seed for generated scores")
	_ = cmd.MarkFlagRequired("tournament")
	_ = cmd.MarkFlagRequired("teams")
	return cmd
}

func splitTeams(v string) []string {
	var out []string
	for _, t := range strings.Split(v, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
