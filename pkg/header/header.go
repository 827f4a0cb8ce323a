// Package header verifies and repairs copyright headers in source files.
//
// A header is specified as a template with {year} and {licensee}
// placeholders. Matching against a file's leading comment block is
// word-wise: every word must agree with the rendered template, except that
// {year} matches any integer. That yields three outcomes: the header is
// present and current, present with a stale year (the block is replaced),
// or absent (the expected header is prepended).
package header

import (
	"strconv"
	"strings"
	"time"

	errs "github.com/licenseward/licenseward/pkg/errors"
)

// Comment markers for the supported source files.
const (
	commentPrefix  = "#"
	hashbangPrefix = "#!"
)

// Placeholders recognized in header templates.
const (
	placeholderYear     = "{year}"
	placeholderLicensee = "{licensee}"
)

// Spec describes the expected header for a run. Immutable once built.
type Spec struct {
	Template string // Header template, possibly with placeholders
	Licensee string // Value for {licensee}
	Year     int    // Value for {year}; zero means the current year
}

// WithDefaults returns a copy with the zero year replaced by the current
// year.
func (s Spec) WithDefaults() Spec {
	if s.Year == 0 {
		s.Year = time.Now().Year()
	}
	return s
}

// Render produces the expected header text: every template line becomes a
// `# ` comment line with placeholders substituted, followed by a blank
// separator line.
func (s Spec) Render() (string, error) {
	if strings.TrimSpace(s.Template) == "" {
		return "", errs.New(errs.ErrCodeInvalidTemplate, "no license header template configured")
	}
	if strings.Contains(s.Template, placeholderLicensee) && s.Licensee == "" {
		return "", errs.New(errs.ErrCodeInvalidTemplate,
			"%s used in header template but no licensee configured", placeholderLicensee)
	}

	s = s.WithDefaults()
	text := strings.ReplaceAll(s.Template, placeholderLicensee, s.Licensee)
	text = strings.ReplaceAll(text, placeholderYear, strconv.Itoa(s.Year))

	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, commentPrefix) {
			line = commentPrefix + " " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String(), nil
}

// Status is the verification outcome for one file.
type Status int

const (
	// StatusMatched means the leading comment block is the expected
	// header with the expected year.
	StatusMatched Status = iota
	// StatusOutdated means the header is present but carries a different
	// year; the block is replaced on rewrite.
	StatusOutdated
	// StatusMissing means no recognizable header block was found; the
	// expected header is prepended on rewrite.
	StatusMissing
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusOutdated:
		return "outdated"
	default:
		return "missing"
	}
}

// match compares a leading comment block against the spec's template.
//
// Both sides are reduced to their content words (comment markers stripped,
// blank lines dropped) and compared line by line, word by word. The
// template's {year} placeholder accepts any integer; a year differing from
// the spec's makes the block Outdated rather than Missing, so the rewrite
// replaces it in place instead of stacking a second header above it.
func (s Spec) match(block string) Status {
	template := strings.ReplaceAll(s.Template, placeholderLicensee, s.Licensee)

	blockLines := cleanLines(block)
	templateLines := cleanLines(template)
	if len(blockLines) == 0 || len(blockLines) != len(templateLines) {
		return StatusMissing
	}

	var years []int
	for i, templateLine := range templateLines {
		blockWords := strings.Fields(blockLines[i])
		templateWords := strings.Fields(templateLine)
		if len(blockWords) != len(templateWords) {
			return StatusMissing
		}

		for j, want := range templateWords {
			got := blockWords[j]
			if want == placeholderYear {
				year, err := strconv.Atoi(got)
				if err != nil {
					return StatusMissing
				}
				years = append(years, year)
				continue
			}
			if got != want {
				return StatusMissing
			}
		}
	}

	expected := s.WithDefaults().Year
	for _, year := range years {
		if year != expected {
			return StatusOutdated
		}
	}
	return StatusMatched
}

// cleanLines strips comment markers and whitespace and drops blank lines.
func cleanLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), commentPrefix))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
