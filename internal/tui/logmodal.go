package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LogModal shows the live stderr stream of a provider test in a scrollable
// overlay. Lines accumulate whether or not the modal is open.
type LogModal struct {
	Viewport viewport.Model
	Lines    []string
	Open     bool
	// follow pins the viewport to the newest line until the user scrolls.
	follow bool
}

// NewLogModal builds an empty, closed log modal.
func NewLogModal() LogModal {
	vp := viewport.New(60, 14)
	return LogModal{Viewport: vp, follow: true}
}

// Append adds a log line and keeps the viewport pinned to the bottom when
// following.
func (m *LogModal) Append(line string) {
	m.Lines = append(m.Lines, line)
	m.Viewport.SetContent(strings.Join(m.Lines, "\n"))
	if m.follow {
		m.Viewport.GotoBottom()
	}
}

// Clear resets the accumulated lines for a fresh test run.
func (m *LogModal) Clear() {
	m.Lines = nil
	m.Viewport.SetContent("")
	m.follow = true
}

// Resize adjusts the viewport to the terminal size.
func (m *LogModal) Resize(width, height int) {
	w := SafeModalWidth(width-8, width)
	h := height - 10
	if h < 5 {
		h = 5
	}
	m.Viewport.Width = w
	m.Viewport.Height = h
	m.Viewport.SetContent(strings.Join(m.Lines, "\n"))
	if m.follow {
		m.Viewport.GotoBottom()
	}
}

// Update routes scroll keys to the viewport. Any manual scroll stops
// following; jumping back to the bottom resumes it.
func (m LogModal) Update(msg tea.Msg) (LogModal, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k", "pgup":
			m.follow = false
		case "G", "end":
			m.follow = true
		}
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	if m.Viewport.AtBottom() {
		m.follow = true
	}
	return m, cmd
}

// View renders the modal content.
func (m LogModal) View(width int) string {
	title := SelectedFieldStyle.Render("Test log")
	body := m.Viewport.View()
	if len(m.Lines) == 0 {
		body = SubtleStyle.Render("waiting for output...")
	}
	help := SubtleStyle.Render("↑/↓ scroll · l/esc close")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)
	return ModalStyle.Width(SafeModalWidth(width-4, width)).Render(content)
}
