// Package config loads licenseward settings from TOML.
//
// Settings live either under [tool.licenseward] in a project's pyproject.toml
// or at the top level of a standalone licenseward.toml. pyproject.toml wins
// when both exist, matching where Python projects keep tool configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/licenseward/licenseward/pkg/errors"
)

// Config file names probed in order.
const (
	PyprojectFile  = "pyproject.toml"
	StandaloneFile = "licenseward.toml"
)

// Config holds the per-run settings. It is immutable once loaded; CLI flag
// overrides produce a modified copy before the run starts.
type Config struct {
	// Avoid is the deny-list of license identifiers. Matching is
	// case-insensitive and whitespace-trimmed (see deps.NewDenyList).
	Avoid []string `toml:"avoid"`

	// LicenseHeader is the header template for the format command.
	// It may contain {year} and {licensee} placeholders.
	LicenseHeader string `toml:"license_header"`

	// LicenseYear is the year substituted for {year}. Zero means the
	// current year.
	LicenseYear int `toml:"license_year"`

	// Licensee is the name substituted for {licensee}.
	Licensee string `toml:"licensee"`
}

// Default returns the zero configuration: empty deny-list, no header
// template, current year.
func Default() *Config {
	return &Config{LicenseYear: time.Now().Year()}
}

// pyproject mirrors the [tool.licenseward] table of a pyproject.toml.
type pyproject struct {
	Tool struct {
		Licenseward Config `toml:"licenseward"`
	} `toml:"tool"`
}

// Load reads configuration from dir, probing pyproject.toml and then
// licenseward.toml. A missing file is not an error: the defaults are
// returned, matching a project that simply has no licenseward section.
// A file that exists but does not parse is fatal.
func Load(dir string) (*Config, error) {
	if path := filepath.Join(dir, PyprojectFile); exists(path) {
		return loadPyproject(path)
	}
	if path := filepath.Join(dir, StandaloneFile); exists(path) {
		return loadStandalone(path)
	}
	return Default(), nil
}

func loadPyproject(path string) (*Config, error) {
	var pp pyproject
	if err := decode(path, &pp); err != nil {
		return nil, err
	}
	return withDefaults(pp.Tool.Licenseward), nil
}

func loadStandalone(path string) (*Config, error) {
	var cfg Config
	if err := decode(path, &cfg); err != nil {
		return nil, err
	}
	return withDefaults(cfg), nil
}

func decode(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "cannot read %s", path)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "cannot parse %s", path)
	}
	return nil
}

func withDefaults(cfg Config) *Config {
	if cfg.LicenseYear == 0 {
		cfg.LicenseYear = time.Now().Year()
	}
	return &cfg
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
