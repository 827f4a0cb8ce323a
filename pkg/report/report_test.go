package report

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/licenseward/licenseward/pkg/deps"
	"github.com/licenseward/licenseward/pkg/registry"
)

type fakeAdapter struct {
	packages map[string]*registry.Package
}

func (a *fakeAdapter) Lookup(_ context.Context, name, _ string) (*registry.Package, error) {
	pkg, ok := a.packages[name]
	if !ok {
		return nil, registry.ErrNotFound
	}
	return pkg, nil
}

func id(name, version string) registry.Identity {
	return registry.Identity{Name: name, Version: version}
}

// testGraph resolves and classifies a small fixture:
//
//	webkit (GPL-3.0)  -> textlib (MIT, BSD-3-Clause)
//	tooling (MIT)     -> textlib
//	nometa  (no license)
func testGraph(t *testing.T) (*deps.Graph, deps.DenyList) {
	t.Helper()

	adapter := &fakeAdapter{packages: map[string]*registry.Package{
		"webkit": {Name: "webkit", Version: "2.0", Licenses: []string{"GPL-3.0"},
			Requires: []registry.Identity{id("textlib", "1.1")}},
		"tooling": {Name: "tooling", Version: "0.4", Licenses: []string{"MIT"},
			Requires: []registry.Identity{id("textlib", "1.1")}},
		"textlib": {Name: "textlib", Version: "1.1", Licenses: []string{"BSD-3-Clause", "MIT"}},
		"nometa":  {Name: "nometa", Version: "0.1"},
	}}

	roots := []registry.Identity{
		id("webkit", "2.0"), id("tooling", "0.4"), id("nometa", "0.1"),
	}
	g := deps.Resolve(context.Background(), roots, adapter, deps.Options{Recursive: true})
	deny := deps.NewDenyList([]string{"GPL-3.0"})
	g.Classify(deny)
	return g, deny
}

func TestAggregateByLicense(t *testing.T) {
	g, deny := testGraph(t)
	r := Aggregate(g, ByLicense, deny)

	wantSummary := Summary{Total: 4, Passed: 2, Failed: 1, Unknown: 1}
	if r.Summary != wantSummary {
		t.Fatalf("Summary = %+v, want %+v", r.Summary, wantSummary)
	}

	wantGroups := []struct {
		license string
		denied  bool
		members []string
	}{
		{"BSD-3-Clause", false, []string{"textlib"}},
		{"GPL-3.0", true, []string{"webkit"}},
		{"MIT", false, []string{"textlib", "tooling"}},
		{"Unknown", false, []string{"nometa"}},
	}
	if len(r.Groups) != len(wantGroups) {
		t.Fatalf("got %d groups, want %d", len(r.Groups), len(wantGroups))
	}
	for i, want := range wantGroups {
		g := r.Groups[i]
		if g.License != want.license || g.Denied != want.denied {
			t.Errorf("group %d = %s denied=%v, want %s denied=%v",
				i, g.License, g.Denied, want.license, want.denied)
		}
		var names []string
		for _, e := range g.Entries {
			names = append(names, e.Name)
		}
		if strings.Join(names, ",") != strings.Join(want.members, ",") {
			t.Errorf("group %s members = %v, want %v", g.License, names, want.members)
		}
	}
}

func TestAggregateByPackage(t *testing.T) {
	g, deny := testGraph(t)
	r := Aggregate(g, ByPackage, deny)

	if r.Groups != nil {
		t.Error("ByPackage report should not carry groups")
	}
	var names []string
	for _, e := range r.Entries {
		names = append(names, e.Name)
	}
	want := "nometa,textlib,tooling,webkit"
	if strings.Join(names, ",") != want {
		t.Errorf("entries = %v, want %s", names, want)
	}

	for _, e := range r.Entries {
		if e.Name == "webkit" && e.Verdict != "fail" {
			t.Errorf("webkit verdict = %s, want fail", e.Verdict)
		}
		if e.Name == "textlib" && e.Depth != 1 {
			t.Errorf("textlib depth = %d, want 1", e.Depth)
		}
	}
}

func TestFilterFails(t *testing.T) {
	g, deny := testGraph(t)

	byLicense := Aggregate(g, ByLicense, deny).FilterFails()
	if len(byLicense.Groups) != 1 || byLicense.Groups[0].License != "GPL-3.0" {
		t.Fatalf("groups = %+v, want only GPL-3.0", byLicense.Groups)
	}
	if len(byLicense.Groups[0].Entries) != 1 || byLicense.Groups[0].Entries[0].Name != "webkit" {
		t.Errorf("entries = %+v, want only webkit", byLicense.Groups[0].Entries)
	}

	byPackage := Aggregate(g, ByPackage, deny).FilterFails()
	if len(byPackage.Entries) != 1 || byPackage.Entries[0].Name != "webkit" {
		t.Errorf("entries = %+v, want only webkit", byPackage.Entries)
	}
}

func TestToJSON(t *testing.T) {
	g, deny := testGraph(t)
	data, err := Aggregate(g, ByLicense, deny).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.RunID == "" || doc.GeneratedAt.IsZero() {
		t.Errorf("document missing run metadata: %+v", doc)
	}
	if doc.Summary.Failed != 1 {
		t.Errorf("summary failed = %d, want 1", doc.Summary.Failed)
	}
	if len(doc.Groups) != 4 {
		t.Errorf("got %d groups, want 4", len(doc.Groups))
	}
}

func TestToDOT(t *testing.T) {
	g, _ := testGraph(t)
	dot := ToDOT(g)

	for _, want := range []string{
		"digraph licenses {",
		`"webkit@2.0"`,
		`"webkit@2.0" -> "textlib@1.1";`,
		`"tooling@0.4" -> "textlib@1.1";`,
		"lightcoral",
		"palegreen",
		"lightgrey",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestLicenseLabel(t *testing.T) {
	if got := LicenseLabel(nil); got != "Unknown" {
		t.Errorf(`LicenseLabel(nil) = %q, want "Unknown"`, got)
	}
	if got := LicenseLabel([]string{"MIT", "BSD-3-Clause"}); got != "MIT, BSD-3-Clause" {
		t.Errorf("LicenseLabel() = %q", got)
	}
}
