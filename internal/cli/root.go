// Package cli wires the calculators into the housing-advisor command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type rootOptions struct {
	logLevel string
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "housing-advisor",
		Short: "Compare buying a home against renting, and triage head injuries for CT",
		Long: "housing-advisor projects the long-term cost of a mortgage against renting\n" +
			"while investing the difference, and walks the head injury CT indication\n" +
			"decision tree.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newProjectCommand(opts),
		newCTCommand(opts),
		newServeCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "housing-advisor %s (commit: %s, built: %s)\n", Version, GitCommit, BuildDate)
			return err
		},
	}
}
