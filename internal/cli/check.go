package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/licenseward/licenseward/pkg/config"
	"github.com/licenseward/licenseward/pkg/deps"
	"github.com/licenseward/licenseward/pkg/pool"
	"github.com/licenseward/licenseward/pkg/registry"
	"github.com/licenseward/licenseward/pkg/report"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	recursive  bool   // expand transitive dependencies
	byPackage  bool   // group output by package instead of by license
	ignoreToml bool   // skip config files, run with an empty deny-list
	silent     bool   // suppress the terminal report
	printFails bool   // show only packages with denied licenses
	workers    int    // concurrent registry lookups
	output     string // JSON report path
	graph      string // diagram path (.svg renders SVG, anything else DOT)
	tui        bool   // browse results interactively
}

// checkCommand creates the check command, which audits the licenses of all
// installed packages against the configured deny-list.
func (a *app) checkCommand() *cobra.Command {
	opts := checkOpts{workers: 1}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit installed package licenses against the deny-list",
		Long: `Check resolves every installed Python package, reads its declared
licenses, and classifies it against the avoid list from pyproject.toml
(or licenseward.toml). The exit code is the number of packages carrying
a denied license.

Examples:
  licenseward check                       # Group report by license
  licenseward check -r --by-package       # Transitive deps, grouped by package
  licenseward check -f                    # Show failing packages only
  licenseward check --output report.json  # Write a JSON report
  licenseward check --graph deps.svg      # Render the dependency graph`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "resolve transitive dependencies")
	cmd.Flags().BoolVar(&opts.byPackage, "by-package", false, "group output by package instead of by license")
	cmd.Flags().BoolVarP(&opts.ignoreToml, "ignore-toml", "i", false, "ignore config files (empty deny-list)")
	cmd.Flags().BoolVarP(&opts.silent, "silent", "s", false, "suppress the terminal report")
	cmd.Flags().BoolVarP(&opts.printFails, "print-fails", "f", false, "show only packages with denied licenses")
	cmd.Flags().IntVarP(&opts.workers, "num-threads", "j", opts.workers, fmt.Sprintf("concurrent lookups (clamped to [%d, %d])", pool.MinWorkers, pool.MaxWorkers))
	cmd.Flags().StringVar(&opts.output, "output", "", "write a JSON report to this path")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "write a dependency diagram to this path (.svg or .dot)")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "browse results interactively")

	return cmd
}

func (a *app) runCheck(ctx context.Context, opts checkOpts) error {
	logger := loggerFromContext(ctx)

	cfg := config.Default()
	if !opts.ignoreToml {
		loaded, err := config.Load(".")
		if err != nil {
			return err
		}
		cfg = loaded
	}
	logger.Debugf("deny-list: %s", strings.Join(cfg.Avoid, ", "))

	spin := newSpinner(ctx, "Scanning installed packages")
	if !opts.silent && !a.verbose {
		spin.Start()
	}

	reg, err := buildRegistry(ctx, logger)
	if err != nil {
		spin.Stop()
		return err
	}

	spin.SetMessage(fmt.Sprintf("Resolving %d packages", reg.Len()))

	track := newProgress(logger)
	g := deps.Resolve(ctx, reg.List(), reg, deps.Options{
		Recursive: opts.recursive,
		Workers:   opts.workers,
		Logger:    func(format string, args ...any) { logger.Warnf(format, args...) },
	})
	spin.Stop()
	track.done(fmt.Sprintf("Resolved %d packages", g.Len()))

	deny := deps.NewDenyList(cfg.Avoid)
	g.Classify(deny)

	groupBy := report.ByLicense
	if opts.byPackage {
		groupBy = report.ByPackage
	}
	rep := report.Aggregate(g, groupBy, deny)

	if !opts.silent {
		display := rep
		if opts.printFails {
			display = rep.FilterFails()
		}
		renderReport(display, opts.recursive)
		renderSummary(rep.Summary)
	}

	if opts.output != "" {
		if err := writeJSONReport(rep, opts.output); err != nil {
			return err
		}
		if !opts.silent {
			printFile(opts.output)
		}
	}

	if opts.graph != "" {
		if err := writeGraph(ctx, g, opts.graph); err != nil {
			return err
		}
		if !opts.silent {
			printFile(opts.graph)
		}
	}

	if opts.tui {
		if err := browseReport(rep); err != nil {
			return err
		}
	}

	a.exitCode = g.FailCount()
	return nil
}

// buildRegistry discovers the interpreter's site directories and indexes
// their package metadata.
func buildRegistry(ctx context.Context, logger *log.Logger) (*registry.Local, error) {
	dirs, err := registry.DiscoverDistDirs(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover site-packages: %w", err)
	}
	py, err := registry.InterpreterVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect python version: %w", err)
	}
	logger.Debugf("python %d.%d.%d, %d site dirs", py[0], py[1], py[2], len(dirs))
	return registry.NewLocal(dirs, py), nil
}

func writeJSONReport(rep report.Report, path string) error {
	data, err := rep.ToJSON()
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeGraph(ctx context.Context, g *deps.Graph, path string) error {
	dot := report.ToDOT(g)

	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		svg, err := report.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
		data = svg
	} else {
		data = []byte(dot)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	return nil
}
