package cli

import (
	"fmt"
	"strings"

	"github.com/licenseward/licenseward/pkg/deps"
	"github.com/licenseward/licenseward/pkg/report"
)

// renderReport prints a classified report to stdout. ByLicense reports get
// one section per license with its packages indented beneath; ByPackage
// reports get one line per package. With recursive resolution each package
// line also lists its direct dependencies, failing ones highlighted.
func renderReport(rep report.Report, recursive bool) {
	for _, line := range reportLines(rep, recursive) {
		fmt.Println(line)
	}
}

// renderSummary prints the run totals beneath the report.
func renderSummary(s report.Summary) {
	fmt.Println()
	parts := []string{fmt.Sprintf("%d packages", s.Total)}
	if s.Failed > 0 {
		parts = append(parts, styleFail.Render(fmt.Sprintf("%d denied", s.Failed)))
	}
	if s.Unknown > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d unknown", s.Unknown)))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

func reportLines(rep report.Report, recursive bool) []string {
	verdicts := verdictIndex(rep)

	var lines []string
	if rep.GroupBy == report.ByPackage {
		for _, e := range rep.Entries {
			lines = append(lines, packageLine(e, recursive, verdicts))
		}
		return lines
	}

	for _, g := range rep.Groups {
		header := fmt.Sprintf("---%s [%d]---", g.License, len(g.Entries))
		if g.Denied {
			header += "  " + styleFail.Render(iconFail)
		} else {
			header += "  " + stylePass.Render(iconPass)
		}
		lines = append(lines, header)

		for _, e := range g.Entries {
			line := "\t" + e.Name
			if reqs := requiresList(e, recursive, verdicts); reqs != "" {
				line += " " + reqs
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func packageLine(e report.Entry, recursive bool, verdicts map[string]string) string {
	icon := stylePass.Render(iconPass)
	if e.Verdict == deps.VerdictFail.String() {
		icon = styleFail.Render(iconFail)
	}

	line := icon + "  " + e.Name + " (" + report.LicenseLabel(e.Licenses) + ")"
	if reqs := requiresList(e, recursive, verdicts); reqs != "" {
		line += " " + reqs
	}
	return line
}

// requiresList formats a package's direct dependencies, coloring the ones
// classified as failing. Dependencies absent from the report (outside the
// resolved set) are skipped.
func requiresList(e report.Entry, recursive bool, verdicts map[string]string) string {
	if !recursive || len(e.Requires) == 0 {
		return ""
	}

	var names []string
	for _, req := range e.Requires {
		verdict, ok := verdicts[req.Name]
		if !ok {
			continue
		}
		if verdict == deps.VerdictFail.String() {
			names = append(names, styleFail.Render(req.Name))
		} else {
			names = append(names, styleBold.Render(req.Name))
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "[ " + strings.Join(names, ", ") + " ]"
}

// verdictIndex maps package names to their verdicts for requirement
// highlighting.
func verdictIndex(rep report.Report) map[string]string {
	idx := make(map[string]string)
	for _, e := range rep.Entries {
		idx[e.Name] = e.Verdict
	}
	for _, g := range rep.Groups {
		for _, e := range g.Entries {
			idx[e.Name] = e.Verdict
		}
	}
	return idx
}
