package registry

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/licenseward/licenseward/pkg/errors"
)

// Local is an Adapter over the metadata an environment keeps on disk for its
// installed packages. It scans dist directories once at construction time;
// lookups afterwards are map reads, so Local is safe for concurrent use.
//
// Three storage layouts are recognized, as pip and setuptools produce them:
//   - <name>-<version>.dist-info/ directories with a METADATA file
//   - <name>.egg-info/ directories with a PKG-INFO file
//   - bare .dist-info / .egg-info metadata files
type Local struct {
	packages map[string]*Package // keyed by normalized name
}

// NewLocal scans the given dist directories and builds the registry.
// Unreadable directories and malformed metadata entries are skipped;
// a package present in several directories keeps its first occurrence.
func NewLocal(dirs []string, py PyVersion) *Local {
	l := &Local{packages: make(map[string]*Package)}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			metaPath, ok := metadataPath(entry.Name(), entry.IsDir(), path)
			if !ok {
				continue
			}
			l.add(metaPath, entry.Name(), py)
		}
	}

	return l
}

// metadataPath maps a dist directory entry to its metadata file.
func metadataPath(name string, isDir bool, path string) (string, bool) {
	switch {
	case strings.HasSuffix(name, ".dist-info"):
		if isDir {
			return filepath.Join(path, "METADATA"), true
		}
		return path, true
	case strings.HasSuffix(name, ".egg-info"):
		if isDir {
			return filepath.Join(path, "PKG-INFO"), true
		}
		return path, true
	}
	return "", false
}

func (l *Local) add(metaPath, entryName string, py PyVersion) {
	f, err := os.Open(metaPath)
	if err != nil {
		return
	}
	defer f.Close()

	pkg, err := parseMetadata(f, py)
	if err != nil {
		return
	}
	if pkg.Name == "" || pkg.Version == "" {
		// Fall back to the directory name, e.g. "requests-2.31.0.dist-info".
		name, version := splitEntryName(entryName)
		if pkg.Name == "" {
			pkg.Name = name
		}
		if pkg.Version == "" {
			pkg.Version = version
		}
	}
	if pkg.Name == "" {
		return
	}

	if _, seen := l.packages[pkg.Name]; !seen {
		l.packages[pkg.Name] = pkg
	}
}

// splitEntryName parses "name-version.dist-info" style entry names.
func splitEntryName(entry string) (name, version string) {
	base := strings.TrimSuffix(strings.TrimSuffix(entry, ".dist-info"), ".egg-info")
	if i := strings.LastIndex(base, "-"); i > 0 {
		return Normalize(base[:i]), base[i+1:]
	}
	return Normalize(base), ""
}

// Lookup implements Adapter. Dependency identities in the returned package
// carry the installed version when the dependency is present in this
// registry, and an empty version otherwise.
func (l *Local) Lookup(_ context.Context, name, version string) (*Package, error) {
	if err := errs.ValidatePackageName(name); err != nil {
		return nil, err
	}

	pkg, ok := l.packages[Normalize(name)]
	if !ok {
		return nil, ErrNotFound
	}
	if version != "" && version != pkg.Version {
		return nil, ErrNotFound
	}

	out := &Package{
		Name:     pkg.Name,
		Version:  pkg.Version,
		Licenses: slices.Clone(pkg.Licenses),
		Requires: make([]Identity, len(pkg.Requires)),
	}
	for i, req := range pkg.Requires {
		out.Requires[i] = req
		if dep, installed := l.packages[req.Name]; installed && req.Version == "" {
			out.Requires[i].Version = dep.Version
		}
	}
	return out, nil
}

// List returns the identities of every installed package, sorted by name.
// These are the roots for a check run.
func (l *Local) List() []Identity {
	ids := make([]Identity, 0, len(l.packages))
	for _, pkg := range l.packages {
		ids = append(ids, Identity{Name: pkg.Name, Version: pkg.Version})
	}
	slices.SortFunc(ids, func(a, b Identity) int {
		return strings.Compare(a.Name, b.Name)
	})
	return ids
}

// Len returns the number of installed packages discovered.
func (l *Local) Len() int {
	return len(l.packages)
}
