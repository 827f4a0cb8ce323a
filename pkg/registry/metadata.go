package registry

import (
	"bufio"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// PyVersion is an interpreter version as (major, minor, patch).
type PyVersion [3]int

// Metadata field prefixes recognized in METADATA / PKG-INFO files.
const (
	fieldName       = "Name: "
	fieldVersion    = "Version: "
	fieldLicenseExp = "License-Expression: "
	fieldClassifier = "Classifier: License :: OSI Approved :: "
	fieldRequires   = "Requires-Dist: "
)

// parseMetadata reads a package's METADATA or PKG-INFO stream.
//
// License identifiers come from License-Expression and OSI license
// classifiers; both forms occur in the wild, sometimes on the same package,
// so the result is sorted and deduped. Requires-Dist entries guarded by an
// `extra ==` marker are optional dependencies and are skipped; entries
// guarded by a python_version marker are kept only when the marker is
// satisfied by py.
func parseMetadata(r io.Reader, py PyVersion) (*Package, error) {
	pkg := &Package{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, fieldName) && pkg.Name == "":
			pkg.Name = Normalize(afterLastColon(line))
		case strings.HasPrefix(line, fieldVersion) && pkg.Version == "":
			pkg.Version = afterLastColon(line)
		case strings.HasPrefix(line, fieldLicenseExp):
			// e.g. "License-Expression: BSD-3-Clause"
			pkg.Licenses = append(pkg.Licenses, afterLastColon(line))
		case strings.HasPrefix(line, fieldClassifier):
			// e.g. "Classifier: License :: OSI Approved :: MIT License"
			pkg.Licenses = append(pkg.Licenses, afterLastColon(line))
		case strings.HasPrefix(line, fieldRequires):
			if name, ok := parseRequirement(strings.TrimPrefix(line, fieldRequires), py); ok {
				pkg.Requires = append(pkg.Requires, Identity{Name: name})
			}
		}

		// Metadata headers end at the first blank line; everything after
		// is the long description.
		if line == "" {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	slices.Sort(pkg.Licenses)
	pkg.Licenses = slices.Compact(pkg.Licenses)
	return pkg, nil
}

// afterLastColon returns the trimmed text after the last colon of a
// metadata line.
func afterLastColon(line string) string {
	if i := strings.LastIndex(line, ":"); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(line)
}

// reqNameDelims ends the name portion of a requirement specifier,
// e.g. "urllib3<3,>=1.21.1" or "coverage (>=5.0)".
var reqNameDelims = regexp.MustCompile(`[<>=~(;!\[ ]`)

// parseRequirement extracts the dependency name from a Requires-Dist value,
// returning ok=false when the requirement does not apply to this
// environment.
func parseRequirement(req string, py PyVersion) (string, bool) {
	if strings.Contains(req, "extra") {
		// Optional dependency group; never installed implicitly.
		return "", false
	}

	if idx := strings.Index(req, ";"); idx >= 0 {
		marker := req[idx+1:]
		if !strings.Contains(marker, "python_version") || !meetsPythonReq(marker, py) {
			return "", false
		}
		req = req[:idx]
	}

	name := req
	if loc := reqNameDelims.FindStringIndex(req); loc != nil {
		name = req[:loc[0]]
	}
	name = Normalize(name)
	if name == "" {
		return "", false
	}
	return name, true
}

// markerPattern extracts the operator and version from a python_version
// marker, e.g. `python_version >= "3.9"`.
var markerPattern = regexp.MustCompile(`(==|<=|>=|!=|<|>)(\d+\.\d+(?:\.\d+)?)`)

// meetsPythonReq reports whether a python_version marker is satisfied by py.
// Unparseable markers are treated as not satisfied.
func meetsPythonReq(marker string, py PyVersion) bool {
	cleaned := strings.NewReplacer(" ", "", "'", "", `"`, "").Replace(marker)

	m := markerPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return false
	}
	op, want := m[1], parseVersion(m[2], py)

	switch op {
	case "<=":
		return compare(py, want) <= 0
	case ">=":
		return compare(py, want) >= 0
	case "<":
		return compare(py, want) < 0
	case ">":
		return compare(py, want) > 0
	case "==":
		return compare(py, want) == 0
	case "!=":
		return compare(py, want) != 0
	}
	return false
}

// parseVersion turns "3.9" or "3.9.1" into a PyVersion, filling missing or
// malformed components from the interpreter version.
func parseVersion(s string, py PyVersion) PyVersion {
	out := py
	for i, part := range strings.SplitN(s, ".", 3) {
		if n, err := strconv.Atoi(part); err == nil {
			out[i] = n
		}
	}
	return out
}

func compare(a, b PyVersion) int {
	return slices.Compare(a[:], b[:])
}
