package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/licenseward/licenseward/pkg/buildinfo"
)

// app carries state shared across the command tree for one invocation.
// Check and format report violation counts through exitCode rather than
// through errors, so a run with findings still prints its full report.
type app struct {
	verbose  bool
	exitCode int
}

// Execute runs the licenseward CLI and returns the process exit code.
//
// The exit code is the number of violations found (denied licenses for
// check, fixed or fixable headers for format), or 1 when a command fails
// outright. Cancellation of ctx aborts in-flight work and surfaces as a
// command failure.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) int {
	a := &app{}
	if err := a.rootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return a.exitCode
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Licenseward audits package licenses and copyright headers",
		Long:         `Licenseward is a CLI tool for auditing the licenses of installed Python packages against a configurable deny-list and for keeping copyright headers in source files present and current.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if a.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(a.checkCommand())
	root.AddCommand(a.formatCommand())

	return root
}
