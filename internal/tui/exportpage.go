package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chi-llm/chi-tui/internal/scratch"
)

// ExportModel publishes one provider's configuration to the location the
// runtime reads.
type ExportModel struct {
	store   *scratch.Store
	entries []scratch.Entry
	cursor  int
	target  scratch.ExportTarget
	status  string

	Width  int
	Height int
}

// NewExportModel loads the providers and preselects the default one.
func NewExportModel(store *scratch.Store, width, height int) ExportModel {
	m := ExportModel{store: store, Width: width, Height: height}
	var defaultID string
	m.entries, defaultID, _ = store.Load()
	for i, e := range m.entries {
		if e.ID == defaultID {
			m.cursor = i
			break
		}
	}
	return m
}

// Update handles navigation, target toggling and the write itself.
func (m ExportModel) Update(msg tea.Msg) (ExportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "g":
			if m.target == scratch.ExportProject {
				m.target = scratch.ExportGlobal
			} else {
				m.target = scratch.ExportProject
			}
		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			path, err := scratch.WriteActiveConfig(m.entries[m.cursor], m.target)
			if err != nil {
				m.status = RenderError(err.Error())
				return m, nil
			}
			m.status = RenderSuccess("wrote " + path)
		case "esc", "q":
			return m, func() tea.Msg { return goBackMsg{} }
		}
	}
	return m, nil
}

// View renders the provider list plus the current write target.
func (m ExportModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Write Configuration"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("target: " + m.target.String()))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(SubtleStyle.Render("  no providers configured yet"))
	}
	for i, e := range m.entries {
		label := fmt.Sprintf("%s  %s", e.Name, SubtleStyle.Render("("+e.Type+")"))
		b.WriteString(RenderMenuItem(label, i == m.cursor))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return RenderApplicationContainer(b.String(), "↑/↓ move · g toggle target · enter write · esc back", m.Width, m.Height)
}
