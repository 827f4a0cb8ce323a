// Package cli implements the licenseward command-line interface.
//
// This package provides commands for auditing the licenses of installed
// Python packages against a deny-list and for verifying copyright headers
// in source files. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - check: Audit installed package licenses against the configured deny-list
//   - format: Verify and repair copyright headers in Python source files
//
// # Exit codes
//
// Both commands report violations through the process exit code: check
// exits with the number of packages carrying a denied license, format with
// the number of files whose header had to be fixed (or would be, under
// --dry-run). Configuration and usage errors exit 1.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

// appName is the application name used for config lookup and display.
const appName = "licenseward"
