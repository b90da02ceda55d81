package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/okian/tabellone/internal/simulate"
)

// cli carries the persistent flags shared by every command.
type cli struct {
	host    string
	timeout time.Duration
	verbose bool
	log     *log.Logger
}

func (c *cli) client() *simulate.Client {
	return simulate.NewClient(c.host, c.timeout)
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "tabellonectl",
		Short: "A CLI for the tabellone standings service",
		Long: `A command-line interface for the tabellone standings service.

describe and points evaluate the scoring rules locally. submit, standings
and simulate talk to a running service.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.log = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				ReportTimestamp: true,
				Prefix:          "tabellonectl",
			})
			if c.verbose {
				c.log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&c.host, "host", simulate.DefaultBaseURL, "The address of the tabellone service")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", simulate.DefaultTimeout, "HTTP request timeout")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug output")

	root.AddCommand(
		newDescribeCmd(c),
		newPointsCmd(c),
		newSubmitCmd(c),
		newStandingsCmd(c),
		newSimulateCmd(c),
	)
	return root
}
