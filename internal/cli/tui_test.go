package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/licenseward/licenseward/pkg/report"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestFlattenEntriesDeduplicates(t *testing.T) {
	rep := report.Report{
		GroupBy: report.ByLicense,
		Groups: []report.Group{
			{License: "BSD-3-Clause", Entries: []report.Entry{{Name: "textlib"}}},
			{License: "MIT", Entries: []report.Entry{{Name: "textlib"}, {Name: "tooling"}}},
		},
	}

	entries := flattenEntries(rep)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].Name != "textlib" || entries[1].Name != "tooling" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestPackageListNavigation(t *testing.T) {
	m := newPackageListModel([]report.Entry{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	})

	next, _ := m.Update(keyMsg("down"))
	m = next.(packageListModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(packageListModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	// Cursor never leaves the list.
	next, _ = m.Update(keyMsg("up"))
	m = next.(packageListModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestPackageListQuit(t *testing.T) {
	m := newPackageListModel([]report.Entry{{Name: "a"}})
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestPackageListView(t *testing.T) {
	m := newPackageListModel([]report.Entry{
		{Name: "webkit", Version: "2.0", Licenses: []string{"GPL-3.0"}, Verdict: "fail"},
		{Name: "textlib", Version: "1.1", Licenses: []string{"MIT"}, Verdict: "pass"},
	})

	view := m.View()
	for _, want := range []string{"License Audit", "webkit", "textlib", "MIT"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
