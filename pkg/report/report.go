// Package report aggregates a classified dependency graph into the views
// the CLI presents: grouped summaries, JSON documents, and Graphviz
// diagrams.
package report

import (
	"sort"
	"strings"

	"github.com/licenseward/licenseward/pkg/deps"
	"github.com/licenseward/licenseward/pkg/registry"
)

// GroupBy selects the report's primary grouping.
type GroupBy int

const (
	// ByLicense groups packages under each declared license.
	ByLicense GroupBy = iota
	// ByPackage lists packages flat, one entry per package.
	ByPackage
)

// Entry is one package in a report.
type Entry struct {
	Name     string              `json:"name"`
	Version  string              `json:"version,omitempty"`
	Licenses []string            `json:"licenses,omitempty"`
	Verdict  string              `json:"verdict"`
	Depth    int                 `json:"depth"`
	Requires []registry.Identity `json:"requires,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Group is a set of entries sharing one license identifier. Packages
// declaring several licenses appear in each matching group.
type Group struct {
	License string  `json:"license"`
	Denied  bool    `json:"denied"`
	Entries []Entry `json:"packages"`
}

// Summary holds the run's totals.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Unknown int `json:"unknown"`
}

// Report is the aggregated result of one check run.
type Report struct {
	GroupBy GroupBy
	Groups  []Group // populated for ByLicense
	Entries []Entry // populated for ByPackage
	Summary Summary
}

// unlicensedGroup labels packages that declared no license at all.
const unlicensedGroup = "Unknown"

// Aggregate builds a report from a classified graph. Groups are sorted by
// license identifier and entries alphabetically by package name, so output
// is stable across runs and worker counts.
func Aggregate(g *deps.Graph, groupBy GroupBy, deny deps.DenyList) Report {
	r := Report{GroupBy: groupBy}

	entries := make([]Entry, 0, g.Len())
	for _, n := range g.Nodes() {
		entries = append(entries, toEntry(n))

		switch n.Verdict {
		case deps.VerdictPass:
			r.Summary.Passed++
		case deps.VerdictFail:
			r.Summary.Failed++
		default:
			r.Summary.Unknown++
		}
	}
	r.Summary.Total = len(entries)

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	if groupBy == ByPackage {
		r.Entries = entries
		return r
	}

	byLicense := make(map[string][]Entry)
	for _, e := range entries {
		if len(e.Licenses) == 0 {
			byLicense[unlicensedGroup] = append(byLicense[unlicensedGroup], e)
			continue
		}
		for _, lic := range e.Licenses {
			byLicense[lic] = append(byLicense[lic], e)
		}
	}

	licenses := make([]string, 0, len(byLicense))
	for lic := range byLicense {
		licenses = append(licenses, lic)
	}
	sort.Strings(licenses)

	for _, lic := range licenses {
		r.Groups = append(r.Groups, Group{
			License: lic,
			Denied:  lic != unlicensedGroup && deny.Denied(lic),
			Entries: byLicense[lic],
		})
	}
	return r
}

// FilterFails returns a copy of the report reduced to failing packages.
// Group sorting and entry order are preserved; groups left empty are
// dropped.
func (r Report) FilterFails() Report {
	out := Report{GroupBy: r.GroupBy, Summary: r.Summary}

	failing := func(e Entry) bool { return e.Verdict == deps.VerdictFail.String() }

	for _, g := range r.Groups {
		var kept []Entry
		for _, e := range g.Entries {
			if failing(e) {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			out.Groups = append(out.Groups, Group{License: g.License, Denied: g.Denied, Entries: kept})
		}
	}
	for _, e := range r.Entries {
		if failing(e) {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

func toEntry(n *deps.Node) Entry {
	e := Entry{
		Name:     n.Name,
		Version:  n.Version,
		Licenses: n.Licenses,
		Verdict:  n.Verdict.String(),
		Depth:    n.Depth,
		Requires: n.Requires,
	}
	if n.Err != nil {
		e.Error = n.Err.Error()
	}
	return e
}

// LicenseLabel joins a package's licenses for display, or the unlicensed
// marker when none were declared.
func LicenseLabel(licenses []string) string {
	if len(licenses) == 0 {
		return unlicensedGroup
	}
	return strings.Join(licenses, ", ")
}
