package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/licenseward/licenseward/pkg/deps"
	"github.com/licenseward/licenseward/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseReport opens an interactive package list for the report.
func browseReport(rep report.Report) error {
	model := newPackageListModel(flattenEntries(rep))
	_, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// flattenEntries reduces a report to one entry per package, whatever its
// grouping. Entries are already sorted by name.
func flattenEntries(rep report.Report) []report.Entry {
	if rep.GroupBy == report.ByPackage {
		return rep.Entries
	}

	seen := make(map[string]struct{})
	var entries []report.Entry
	for _, g := range rep.Groups {
		for _, e := range g.Entries {
			if _, ok := seen[e.Name]; ok {
				continue
			}
			seen[e.Name] = struct{}{}
			entries = append(entries, e)
		}
	}
	return entries
}

// packageListModel is the bubbletea model for browsing audit results.
type packageListModel struct {
	entries []report.Entry
	cursor  int
	height  int
	offset  int
}

func newPackageListModel(entries []report.Entry) packageListModel {
	return packageListModel{
		entries: entries,
		height:  15,
	}
}

func (m packageListModel) Init() tea.Cmd {
	return nil
}

func (m packageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m packageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("License Audit"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.offset; i < end; i++ {
		e := m.entries[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		verdict := stylePass.Render(iconPass)
		if e.Verdict == deps.VerdictFail.String() {
			verdict = styleFail.Render(iconFail)
		}

		name := listNormalStyle.Render(fmt.Sprintf("%-30s", e.Name))
		if i == m.cursor {
			name = listSelectedStyle.Render(fmt.Sprintf("%-30s", e.Name))
		}

		line := cursor + verdict + " " + name +
			listDimStyle.Render(fmt.Sprintf("%-12s", e.Version)) +
			listDimStyle.Render(report.LicenseLabel(e.Licenses))
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.entries) > m.height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.entries))))
	}

	return b.String()
}
