package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chi-llm/chi-tui/internal/scratch"
)

// SelectDefaultModel lets the user point the runtime at one provider.
type SelectDefaultModel struct {
	store     *scratch.Store
	entries   []scratch.Entry
	defaultID string
	cursor    int
	status    string

	Width  int
	Height int
}

// NewSelectDefaultModel loads the current providers and default pointer.
func NewSelectDefaultModel(store *scratch.Store, width, height int) SelectDefaultModel {
	m := SelectDefaultModel{store: store, Width: width, Height: height}
	m.entries, m.defaultID, _ = store.Load()
	for i, e := range m.entries {
		if e.ID == m.defaultID {
			m.cursor = i
			break
		}
	}
	return m
}

// Update handles navigation and selection.
func (m SelectDefaultModel) Update(msg tea.Msg) (SelectDefaultModel, tea.Cmd) {
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
		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			e := m.entries[m.cursor]
			if err := m.store.SetDefault(e.ID); err != nil {
				m.status = RenderError(err.Error())
				return m, nil
			}
			m.defaultID = e.ID
			m.status = RenderSuccess(e.Name + " is now the default")
		case "esc", "q":
			return m, func() tea.Msg { return goBackMsg{} }
		}
	}
	return m, nil
}

// View renders the provider list with the default marked.
func (m SelectDefaultModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Select Default Provider"))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(SubtleStyle.Render("  no providers configured yet"))
	}
	for i, e := range m.entries {
		label := fmt.Sprintf("%s  %s", e.Name, SubtleStyle.Render("("+e.Type+")"))
		if e.ID == m.defaultID {
			label += " " + SuccessStyle.Render("★")
		}
		b.WriteString(RenderMenuItem(label, i == m.cursor))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return RenderApplicationContainer(b.String(), "↑/↓ move · enter set default · esc back", m.Width, m.Height)
}
