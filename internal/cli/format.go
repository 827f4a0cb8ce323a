package cli

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/licenseward/licenseward/pkg/config"
	"github.com/licenseward/licenseward/pkg/header"
	"github.com/licenseward/licenseward/pkg/pool"
)

// formatOpts holds the command-line flags for the format command.
type formatOpts struct {
	licensee string // overrides the configured licensee
	year     int    // overrides the configured year
	silent   bool   // suppress per-file output
	dryRun   bool   // report without rewriting
	workers  int    // concurrent file processing
}

// formatCommand creates the format command, which verifies and repairs the
// copyright header of Python source files.
func (a *app) formatCommand() *cobra.Command {
	opts := formatOpts{workers: 1}

	cmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Verify and repair copyright headers in Python files",
		Long: `Format checks each file's leading comment block against the
license_header template from pyproject.toml (or licenseward.toml).
Files with a stale year get their header replaced; files without a
header get it prepended, below any hashbang line. With no file
arguments the current directory is walked for *.py files.

The exit code is the number of files that needed fixing.

Examples:
  licenseward format                  # Whole tree
  licenseward format src/app.py       # Specific files
  licenseward format -d               # Report only, change nothing
  licenseward format -y 2026 -l Acme  # Override configured year/licensee`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFormat(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.licensee, "licensee", "l", "", "licensee substituted for {licensee}")
	cmd.Flags().IntVarP(&opts.year, "license-year", "y", 0, "year substituted for {year} (default current)")
	cmd.Flags().BoolVarP(&opts.silent, "silent", "s", false, "suppress per-file output")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "report without modifying files")
	cmd.Flags().IntVarP(&opts.workers, "num-threads", "j", opts.workers, fmt.Sprintf("concurrent files (clamped to [%d, %d])", pool.MinWorkers, pool.MaxWorkers))

	return cmd
}

func (a *app) runFormat(ctx context.Context, opts formatOpts, args []string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	spec := header.Spec{
		Template: cfg.LicenseHeader,
		Licensee: cfg.Licensee,
		Year:     cfg.LicenseYear,
	}
	if opts.licensee != "" {
		spec.Licensee = opts.licensee
	}
	if opts.year != 0 {
		spec.Year = opts.year
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	logger.Debugf("formatting %d files", len(files))

	results, err := header.Process(ctx, files, spec, header.Options{
		DryRun:  opts.dryRun,
		Workers: opts.workers,
	})
	if err != nil {
		return err
	}

	needsFix := header.NeedsFix(results)
	if !opts.silent {
		for _, r := range results {
			printFileStatus(r)
		}
		fmt.Println()
		fmt.Printf("%s files to fix.\n", styleFail.Render(fmt.Sprintf("%d", needsFix)))
	}

	a.exitCode = needsFix
	return nil
}

func printFileStatus(r header.FileResult) {
	switch {
	case r.Err != nil:
		printError("%s: %v", r.Path, r.Err)
	case r.Status == header.StatusMatched:
		fmt.Printf("%s: License header found.\n", stylePass.Render(r.Path))
	case r.Status == header.StatusOutdated:
		fmt.Printf("%s: License header outdated.\n", StyleWarning.Render(r.Path))
	default:
		fmt.Printf("%s: License header missing.\n", styleFail.Render(r.Path))
	}
}

// collectFiles resolves the format command's targets: explicit arguments
// filtered to existing .py files, or a walk of the current directory.
func collectFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		var files []string
		for _, arg := range args {
			if filepath.Ext(arg) != ".py" {
				continue
			}
			files = append(files, arg)
		}
		return files, nil
	}
	return findPythonFiles(".")
}

// skipDir reports whether a directory should be pruned from the walk.
// Build output, caches, package metadata, and hidden directories never
// contain first-party source.
func skipDir(name string) bool {
	switch {
	case name == "dist", name == "__pycache__":
		return true
	case strings.HasSuffix(name, ".egg-info"):
		return true
	case strings.HasPrefix(name, "."):
		return true
	}
	return false
}

// findPythonFiles recursively collects *.py files under root.
func findPythonFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".py" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
