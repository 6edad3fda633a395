package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version, injected via ldflags
	commit  string  // git commit SHA
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// NewRootCommand builds the meiro command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "meiro",
		Short:        "meiro generates dungeon floors",
		Long:         `meiro splits a rectangle into blocks, puts a room in each block, connects neighboring rooms with corridors and prints the resulting map.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(log.WithContext(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("meiro %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newViewCmd())

	return root
}

// Execute runs the CLI with ctx, which commands use for cancellation.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
