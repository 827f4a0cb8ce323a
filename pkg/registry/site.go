package registry

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	errs "github.com/licenseward/licenseward/pkg/errors"
)

// DiscoverDistDirs locates the environment's dist directories by parsing the
// output of `python3 -m site`. Entries flagged as "(doesn't exist)" are
// skipped, as are paths that are not site-packages or dist-packages.
func DiscoverDistDirs(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "python3", "-m", "site").Output()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "running `python3 -m site`")
	}
	return parseSiteOutput(string(out)), nil
}

// parseSiteOutput extracts dist directory paths from `python3 -m site`
// output. Sample:
//
//	sys.path = [
//	    '/home/user/project',
//	    '/usr/lib/python3.12/site-packages',
//	]
//	USER_SITE: '/home/user/.local/lib/python3.12/site-packages' (doesn't exist)
func parseSiteOutput(out string) []string {
	var dirs []string
	for _, field := range strings.FieldsFunc(out, func(r rune) bool {
		return r == '\n' || r == ','
	}) {
		if !strings.Contains(field, "site-packages") && !strings.Contains(field, "dist-packages") {
			continue
		}
		if strings.Contains(field, "doesn't exist") {
			continue
		}
		start := strings.Index(field, "'")
		if start < 0 {
			continue
		}
		end := strings.Index(field[start+1:], "'")
		if end < 0 {
			continue
		}
		dirs = append(dirs, field[start+1:start+1+end])
	}
	return dirs
}

// InterpreterVersion returns the version of the python3 on PATH.
func InterpreterVersion(ctx context.Context) (PyVersion, error) {
	out, err := exec.CommandContext(ctx, "python3", "--version").Output()
	if err != nil {
		return PyVersion{}, errs.Wrap(errs.ErrCodeInternal, err, "running `python3 --version`")
	}
	return parseVersionOutput(string(out))
}

// parseVersionOutput parses "Python 3.12.4" style output.
func parseVersionOutput(out string) (PyVersion, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return PyVersion{}, errs.New(errs.ErrCodeInternal, "empty `python3 --version` output")
	}

	var v PyVersion
	for i, part := range strings.SplitN(fields[len(fields)-1], ".", 3) {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return PyVersion{}, errs.Wrap(errs.ErrCodeInternal, err, "parsing python version %q", out)
		}
		v[i] = n
	}
	return v, nil
}
