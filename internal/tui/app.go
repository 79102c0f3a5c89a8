package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chi-llm/chi-tui/internal/chillm"
	"github.com/chi-llm/chi-tui/internal/config"
	"github.com/chi-llm/chi-tui/internal/scratch"
)

// Page identifies the active screen.
type Page string

const (
	PageWelcome       Page = "welcome"
	PageProviders     Page = "providers"
	PageSelectDefault Page = "select-default"
	PageExport        Page = "export"
)

// goBackMsg returns control to the welcome menu.
type goBackMsg struct{}

// menuEntry is one welcome-menu row.
type menuEntry struct {
	label string
	page  Page
	quit  bool
}

// AppModel is the top-level coordinator. Only the active page's model is
// constructed; returning to the menu drops it, so each page re-reads the
// scratch document on entry.
type AppModel struct {
	CurrentPage Page

	Providers     ProvidersModel
	SelectDefault SelectDefaultModel
	Export        ExportModel

	runner *chillm.Runner
	store  *scratch.Store
	prefs  *config.Preferences

	menu     []menuEntry
	menuIdx  int
	menuNote string

	Width  int
	Height int
}

// NewAppModel creates the application starting at the welcome menu.
func NewAppModel(runner *chillm.Runner, store *scratch.Store, prefs *config.Preferences) AppModel {
	width, height := GetTerminalSize()
	return AppModel{
		CurrentPage: PageWelcome,
		runner:      runner,
		store:       store,
		prefs:       prefs,
		Width:       width,
		Height:      height,
		menu: []menuEntry{
			{label: "Configure Providers", page: PageProviders},
			{label: "Select Default Provider", page: PageSelectDefault},
			{label: "Write Configuration", page: PageExport},
			{label: "Quit", quit: true},
		},
	}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model, routing messages to the active page.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Fall through to the active page so it can resize too.

	case goBackMsg:
		m.CurrentPage = PageWelcome
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.CurrentPage == PageWelcome {
			return m.updateWelcome(msg)
		}
	}

	var cmd tea.Cmd
	switch m.CurrentPage {
	case PageProviders:
		m.Providers, cmd = m.Providers.Update(msg)
	case PageSelectDefault:
		m.SelectDefault, cmd = m.SelectDefault.Update(msg)
	case PageExport:
		m.Export, cmd = m.Export.Update(msg)
	}
	return m, cmd
}

func (m AppModel) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case "down", "j":
		if m.menuIdx < len(m.menu)-1 {
			m.menuIdx++
		}
	case "enter":
		entry := m.menu[m.menuIdx]
		if entry.quit {
			return m, tea.Quit
		}
		return m.openPage(entry.page)
	}
	return m, nil
}

func (m AppModel) openPage(page Page) (tea.Model, tea.Cmd) {
	m.CurrentPage = page
	switch page {
	case PageProviders:
		m.Providers = NewProvidersModel(m.runner, m.store, m.prefs, m.Width, m.Height)
		return m, m.Providers.Init()
	case PageSelectDefault:
		m.SelectDefault = NewSelectDefaultModel(m.store, m.Width, m.Height)
	case PageExport:
		m.Export = NewExportModel(m.store, m.Width, m.Height)
	}
	return m, nil
}

// View implements tea.Model.
func (m AppModel) View() string {
	switch m.CurrentPage {
	case PageProviders:
		return m.Providers.View()
	case PageSelectDefault:
		return m.SelectDefault.View()
	case PageExport:
		return m.Export.View()
	}
	return m.welcomeView()
}

func (m AppModel) welcomeView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Welcome"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Configure and verify chi-llm providers"))
	b.WriteString("\n\n")
	for i, entry := range m.menu {
		b.WriteString(RenderMenuItem(entry.label, i == m.menuIdx))
		b.WriteString("\n")
	}
	if m.menuNote != "" {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(m.menuNote))
	}
	return RenderApplicationContainer(b.String(), "↑/↓ move · enter select · q quit", m.Width, m.Height)
}
