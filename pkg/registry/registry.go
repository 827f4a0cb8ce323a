// Package registry exposes installed-package metadata to the resolver.
//
// The only implementation is Local, which scans a Python environment's
// dist directories (site-packages, dist-packages) for *.dist-info and
// *.egg-info metadata. There is deliberately no network-backed adapter:
// licenseward audits what is already installed.
package registry

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// ErrNotFound is returned by Lookup when a package is absent from the
// registry. The resolver treats it as a localized failure: the node is
// reported with an unknown license and traversal continues.
var ErrNotFound = errors.New("package not found in registry")

// Identity uniquely identifies a package as a (name, version) pair.
// An empty Version means "whichever version is installed".
type Identity struct {
	Name    string
	Version string
}

// String renders the identity as name@version.
func (id Identity) String() string {
	if id.Version == "" {
		return id.Name
	}
	return id.Name + "@" + id.Version
}

// Package is the metadata the registry knows about one installed package.
type Package struct {
	Name     string     // Canonical (normalized) package name
	Version  string     // Installed version
	Licenses []string   // Declared license identifiers, sorted, deduped; may be empty
	Requires []Identity // Direct dependencies
}

// Adapter is the lookup interface consumed by the resolver.
type Adapter interface {
	// Lookup returns metadata for the package with the given name. If
	// version is non-empty it must match the installed version; an empty
	// version matches whatever is installed. Returns ErrNotFound when the
	// package is not in the registry.
	Lookup(ctx context.Context, name, version string) (*Package, error)
}

// normPattern collapses runs of -, _ and . per PEP 503 name normalization.
var normPattern = regexp.MustCompile(`[-_.]+`)

// Normalize canonicalizes a package name: lowercase with runs of
// separator characters collapsed to a single dash. "Typing_Extensions"
// and "typing-extensions" refer to the same package.
func Normalize(name string) string {
	return normPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
