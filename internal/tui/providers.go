package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chi-llm/chi-tui/internal/chillm"
	"github.com/chi-llm/chi-tui/internal/config"
	"github.com/chi-llm/chi-tui/internal/form"
	"github.com/chi-llm/chi-tui/internal/logging"
	"github.com/chi-llm/chi-tui/internal/scratch"
)

// focusArea identifies which surface owns keyboard input. Modals are
// checked first in Update so they always win over the page beneath.
type focusArea int

const (
	focusList focusArea = iota
	focusForm
	focusDropdown
	focusLog
)

// ProvidersModel is the provider list plus the per-provider editing form
// and its overlays.
type ProvidersModel struct {
	runner *chillm.Runner
	store  *scratch.Store
	prefs  *config.Preferences

	entries   []scratch.Entry
	defaultID string
	cursor    int

	catalog   *chillm.SchemaCatalog
	schemaErr error

	focus    focusArea
	form     *form.Form
	dropdown *Dropdown
	logModal LogModal
	session  *testSession
	spin     spinner.Model

	status string

	Width  int
	Height int
}

// NewProvidersModel loads the scratch document and fetches the schema
// catalog. A schema failure degrades the page rather than failing it: the
// list, deletion and the default pointer keep working, and forms open with
// only the type row.
func NewProvidersModel(runner *chillm.Runner, store *scratch.Store, prefs *config.Preferences, width, height int) ProvidersModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	m := ProvidersModel{
		runner:   runner,
		store:    store,
		prefs:    prefs,
		spin:     sp,
		logModal: NewLogModal(),
		Width:    width,
		Height:   height,
	}
	m.logModal.Resize(width, height)

	m.entries, m.defaultID, _ = store.Load()

	ctx, cancel := context.WithTimeout(context.Background(), chillm.SchemaTimeout)
	defer cancel()
	m.catalog, m.schemaErr = runner.FetchSchemas(ctx)
	if m.schemaErr != nil {
		logging.Warn("schema catalog unavailable", zap.Error(m.schemaErr))
		m.status = WarningStyle.Render("schemas unavailable: " + m.schemaErr.Error())
	}

	return m
}

// Init starts the spinner; the poll tick only runs while a test session
// is live.
func (m ProvidersModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update handles all input for the page, routing to whichever surface has
// focus.
func (m ProvidersModel) Update(msg tea.Msg) (ProvidersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.logModal.Resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m.pollSession()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.focus {
		case focusLog:
			return m.updateLog(msg)
		case focusDropdown:
			return m.updateDropdown(msg)
		case focusForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// pollSession drains the live session's channels. Progress first, then the
// verdict, then progress again so nothing delivered alongside the verdict
// is lost.
func (m ProvidersModel) pollSession() (ProvidersModel, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}

	m.session.DrainProgress(func(line string) {
		m.logModal.Append(line)
	})

	if v, ok := m.session.PollVerdict(); ok {
		m.session.DrainProgress(func(line string) {
			m.logModal.Append(line)
		})
		pending := m.session.pendingHash
		m.session = nil

		if v.OK {
			if m.form != nil {
				m.form.MarkTested(pending)
			}
			msg := v.Message
			if msg == "" {
				msg = "provider responded"
			}
			m.logModal.Append("OK: " + msg)
			m.status = RenderSuccess(msg)
			return m, nil
		}

		if m.form != nil {
			m.form.LastVerifiedHash = ""
		}
		m.logModal.Append("FAILED: " + v.Message)
		m.status = RenderError(v.Message)
		// A failed test always surfaces the log so the user sees why.
		m.logModal.Open = true
		if m.focus == focusForm || m.focus == focusList {
			m.focus = focusLog
		}
		return m, nil
	}

	return m, tick()
}

func (m ProvidersModel) updateList(msg tea.KeyMsg) (ProvidersModel, tea.Cmd) {
	// The list has one synthetic trailing "add new" row after the entries.
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries) {
			m.cursor++
		}
	case "a":
		return m.addProvider()
	case "d":
		return m.deleteProvider()
	case "enter":
		if m.cursor == len(m.entries) {
			return m.addProvider()
		}
		return m.openForm()
	case "l":
		m.logModal.Open = true
		m.focus = focusLog
	case "esc":
		return m, func() tea.Msg { return goBackMsg{} }
	}
	return m, nil
}

// addProvider appends a fresh entry with a generated identity and the most
// useful known type, persists it, and opens its form.
func (m ProvidersModel) addProvider() (ProvidersModel, tea.Cmd) {
	ptype := m.preferredType()
	entry := scratch.Entry{
		ID:     uuid.NewString(),
		Name:   fmt.Sprintf("provider-%d", len(m.entries)+1),
		Type:   ptype,
		Config: map[string]any{"type": ptype},
	}
	m.entries = append(m.entries, entry)
	m.cursor = len(m.entries) - 1
	if err := m.store.Save(m.entries); err != nil {
		m.status = RenderError(err.Error())
		return m, nil
	}
	return m.openForm()
}

// preferredType picks a starting type for new providers, favoring the
// zero-configuration local variants.
func (m *ProvidersModel) preferredType() string {
	if m.catalog != nil {
		for _, want := range []string{"local-zeroconfig", "local"} {
			for _, t := range m.catalog.Types {
				if t == want {
					return t
				}
			}
		}
		if len(m.catalog.Types) > 0 {
			return m.catalog.Types[0]
		}
	}
	return "local"
}

func (m ProvidersModel) deleteProvider() (ProvidersModel, tea.Cmd) {
	if len(m.entries) == 0 || m.cursor >= len(m.entries) {
		return m, nil
	}
	removed := m.entries[m.cursor]
	m.entries = append(m.entries[:m.cursor], m.entries[m.cursor+1:]...)
	if m.cursor >= len(m.entries) && m.cursor > 0 {
		m.cursor--
	}
	if removed.ID == m.defaultID {
		m.defaultID = ""
		if err := m.store.SetDefault(""); err != nil {
			m.status = RenderError(err.Error())
			return m, nil
		}
	}
	if err := m.store.Save(m.entries); err != nil {
		m.status = RenderError(err.Error())
		return m, nil
	}
	m.status = SubtleStyle.Render("deleted " + removed.Name)
	return m, nil
}

func (m ProvidersModel) openForm() (ProvidersModel, tea.Cmd) {
	if len(m.entries) == 0 || m.cursor >= len(m.entries) {
		return m, nil
	}
	entry := m.entries[m.cursor]
	m.form = form.Open(entry, m.catalog.FieldsFor(entry.Type))
	m.focus = focusForm
	m.status = ""
	return m, nil
}

func (m ProvidersModel) updateForm(msg tea.KeyMsg) (ProvidersModel, tea.Cmd) {
	f := m.form
	if f == nil {
		m.focus = focusList
		return m, nil
	}

	if f.Editing {
		switch msg.String() {
		case "enter", "esc":
			f.StopEditing()
		case "backspace":
			f.DeleteBack()
		case "delete":
			f.DeleteForward()
		case "left":
			f.CursorLeft()
		case "right":
			f.CursorRight()
		default:
			for _, r := range msg.Runes {
				f.InsertRune(r)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		f.MoveUp()
	case "down", "j":
		f.MoveDown()
	case "tab":
		f.TabNext()
	case "shift+tab":
		f.TabPrev()
	case "left", "h":
		f.MoveLeft()
	case "right":
		f.MoveRight()
	case "l":
		if !f.OnButtons() {
			m.logModal.Open = true
			m.focus = focusLog
			return m, nil
		}
		f.MoveRight()
	case "enter":
		return m.activateRow()
	case "esc":
		// Discard unsaved edits; the scratch document still holds the
		// last saved state.
		m.form = nil
		m.focus = focusList
		m.status = ""
	}
	return m, nil
}

// activateRow handles enter on the current form row: buttons run their
// action, enumerated fields open a dropdown, everything else starts
// inline editing.
func (m ProvidersModel) activateRow() (ProvidersModel, tea.Cmd) {
	f := m.form
	if f.OnButtons() {
		switch f.ButtonIndex() {
		case form.ButtonTest:
			return m.startTest()
		case form.ButtonSave:
			return m.saveForm()
		default: // cancel
			m.form = nil
			m.focus = focusList
			m.status = ""
			return m, nil
		}
	}

	fd := f.SelectedField()
	switch {
	case f.Selected == 0:
		return m.openTypeDropdown()
	case len(fd.Schema.Options) > 0:
		m.dropdown = NewDropdown("Select "+fd.Schema.Name, f.Selected, fd.Schema.Options)
		m.focus = focusDropdown
	case fd.Schema.Name == "model" || fd.Schema.Name == "model_path":
		return m.openModelDropdown(fd.Schema.Name)
	default:
		f.StartEditing()
	}
	return m, nil
}

func (m ProvidersModel) openTypeDropdown() (ProvidersModel, tea.Cmd) {
	if m.catalog == nil || len(m.catalog.Types) == 0 {
		m.status = WarningStyle.Render("no provider types available")
		return m, nil
	}
	m.dropdown = NewDropdown("Select provider type", 0, m.catalog.Types)
	m.focus = focusDropdown
	return m, nil
}

// openModelDropdown runs a synchronous discovery query and presents the
// results. Downloaded models are decorated; the raw identifier is what
// gets applied.
func (m ProvidersModel) openModelDropdown(fieldName string) (ProvidersModel, tea.Cmd) {
	f := m.form
	timeout := time.Duration(m.prefs.DiscoveryTimeout) * time.Second
	models, err := m.runner.DiscoverModels(context.Background(), f.Type(), f.Values(), timeout)
	if err != nil {
		m.status = WarningStyle.Render("discovery failed: " + err.Error())
		return m, nil
	}
	if len(models) == 0 {
		m.status = WarningStyle.Render("no models discovered, enter one manually")
		return m, nil
	}

	items := make([]DropdownItem, 0, len(models))
	for _, model := range models {
		label := model.ID
		if model.Downloaded {
			label += " ✓"
		}
		items = append(items, DropdownItem{Value: model.ID, Label: label})
	}
	m.dropdown = &Dropdown{Title: "Select " + fieldName, Target: f.Selected, Items: items}
	m.focus = focusDropdown
	return m, nil
}

func (m ProvidersModel) updateDropdown(msg tea.KeyMsg) (ProvidersModel, tea.Cmd) {
	d := m.dropdown
	switch msg.String() {
	case "esc":
		m.dropdown = nil
		m.focus = focusForm
	case "enter":
		item, ok := d.Current()
		m.dropdown = nil
		m.focus = focusForm
		if !ok {
			return m, nil
		}
		return m.applyChoice(d.Target, item.Value)
	case "up":
		d.MoveUp()
	case "down":
		d.MoveDown()
	case "backspace":
		d.Backspace()
	default:
		for _, r := range msg.Runes {
			d.Type(r)
		}
	}
	return m, nil
}

// applyChoice writes a dropdown value into the targeted row. Choosing a
// new provider type rebuilds the field rows from that type's schema while
// keeping the open-time hash, so the type change registers as dirty.
func (m ProvidersModel) applyChoice(target int, value string) (ProvidersModel, tea.Cmd) {
	f := m.form
	if target == 0 {
		if value == f.Type() {
			return m, nil
		}
		entry := m.entries[m.cursor]
		entry.Type = value
		next := form.Open(entry, m.catalog.FieldsFor(value))
		next.InitialHash = f.InitialHash
		m.form = next
		return m, nil
	}

	f.Selected = target
	f.SetBuffer(value)
	return m, nil
}

// startTest launches the validation session for the form's current
// content. Only one session may run at a time anywhere in the app.
func (m ProvidersModel) startTest() (ProvidersModel, tea.Cmd) {
	f := m.form
	ptype := f.Type()
	timeout := chillm.TestTimeout(ptype)

	m.logModal.Clear()
	s, ok := startTestSession(m.runner, ptype, f.Values(), timeout, f.Hash())
	if !ok {
		m.status = WarningStyle.Render("a test is already running")
		return m, nil
	}
	m.session = s
	m.status = SpinnerStyle.Render("testing " + ptype + "...")

	if m.prefs.AutoOpenLog && chillm.AutoOpenLog(ptype) {
		m.logModal.Open = true
		m.focus = focusLog
	}
	return m, tea.Batch(tick(), m.spin.Tick)
}

// saveForm applies the save gate and persists the entry on success. The
// form stays open; its open-time hash resets so it reads as clean relative
// to what was just saved.
func (m ProvidersModel) saveForm() (ProvidersModel, tea.Cmd) {
	f := m.form
	if !f.CanSave() {
		m.status = RenderError("run a passing test before saving changes")
		return m, nil
	}

	entry := &m.entries[m.cursor]
	f.ApplyToEntry(entry)
	if err := m.store.Save(m.entries); err != nil {
		m.status = RenderError(err.Error())
		return m, nil
	}

	f.InitialHash = f.Hash()
	m.status = RenderSuccess("saved " + entry.Name)
	return m, nil
}

func (m ProvidersModel) updateLog(msg tea.KeyMsg) (ProvidersModel, tea.Cmd) {
	switch msg.String() {
	case "l", "esc":
		m.logModal.Open = false
		if m.form != nil {
			m.focus = focusForm
		} else {
			m.focus = focusList
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.logModal, cmd = m.logModal.Update(msg)
	return m, cmd
}

// View renders the page with any active overlay on top.
func (m ProvidersModel) View() string {
	if m.logModal.Open {
		return RenderModalOverlay(m.logModal.View(m.Width), m.Width, m.Height)
	}
	if m.dropdown != nil && m.focus == focusDropdown {
		return RenderModalOverlay(m.dropdown.View(m.Width), m.Width, m.Height)
	}

	var content, footer string
	if m.form != nil {
		content = m.formView()
		if m.form.Editing {
			footer = "type to edit · enter/esc done"
		} else {
			footer = "↑/↓/tab move · enter edit/activate · l log · esc back"
		}
	} else {
		content = m.listView()
		footer = "↑/↓ move · enter edit · a add · d delete · l log · esc back"
	}
	return RenderApplicationContainer(content, footer, m.Width, m.Height)
}

func (m ProvidersModel) listView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Providers"))
	b.WriteString("\n")

	for i, e := range m.entries {
		label := fmt.Sprintf("%s  %s", e.Name, SubtleStyle.Render("("+e.Type+")"))
		if e.ID == m.defaultID {
			label += " " + SuccessStyle.Render("★ default")
		}
		b.WriteString(RenderMenuItem(label, i == m.cursor))
		b.WriteString("\n")
	}
	b.WriteString(RenderMenuItem(SubtleStyle.Render("+ add provider"), m.cursor == len(m.entries)))
	b.WriteString("\n")

	if m.session != nil {
		b.WriteString("\n")
		b.WriteString(m.spin.View() + SpinnerStyle.Render(" test in progress"))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StatusBarStyle.Render(m.status))
	}
	return b.String()
}

func (m ProvidersModel) formView() string {
	f := m.form
	entry := m.entries[m.cursor]

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Edit " + entry.Name))
	b.WriteString("\n")

	// Window the field rows so long schemas keep the selection and the
	// button row on screen. Chrome, buttons and status eat the rest.
	visible := m.Height - 14
	if visible < 3 {
		visible = 3
	}
	start := f.EnsureVisible(visible)
	end := start + visible
	if end > len(f.Fields) {
		end = len(f.Fields)
	}

	if start > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		fd := f.Fields[i]
		label := fd.Schema.Name
		if fd.Schema.Required {
			label += "*"
		}
		value := fd.Buffer
		if fd.Schema.Kind == "secret" && value != "" {
			value = strings.Repeat("•", len([]rune(value)))
		}

		line := fmt.Sprintf("%-14s %s", label, value)
		switch {
		case i == f.Selected && f.Editing:
			line = fmt.Sprintf("%-14s %s", label, renderEditBuffer(fd.Buffer, fd.Cursor, fd.Schema.Kind == "secret"))
			b.WriteString(EditingFieldStyle.Render("→ " + line))
		case i == f.Selected:
			b.WriteString(SelectedFieldStyle.Render("→ " + line))
		default:
			b.WriteString(FieldLabelStyle.Render("  " + line))
		}
		if help := fd.Schema.Help; help != "" && i == f.Selected {
			b.WriteString("\n")
			b.WriteString(SubtleStyle.Render("    " + help))
		}
		b.WriteString("\n")
	}
	if end < len(f.Fields) {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  ↓ %d more", len(f.Fields)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.buttonRow())

	if m.session != nil {
		b.WriteString("\n\n")
		b.WriteString(m.spin.View() + SpinnerStyle.Render(fmt.Sprintf(" testing (%ds elapsed, l for log)", int(m.session.Elapsed().Seconds()))))
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}
	return b.String()
}

func (m ProvidersModel) buttonRow() string {
	f := m.form
	labels := [form.ButtonCount]string{"Test", "Save", "Cancel"}
	parts := make([]string, 0, form.ButtonCount)
	for i, label := range labels {
		style := ButtonStyle
		if i == form.ButtonSave && !f.CanSave() {
			style = DisabledButtonStyle
		}
		if f.OnButtons() && f.ButtonIndex() == i {
			style = SelectedButtonStyle
		}
		parts = append(parts, style.Render("[ "+label+" ]"))
	}
	return strings.Join(parts, " ")
}

// renderEditBuffer places a visible cursor inside the buffer at the rune
// offset.
func renderEditBuffer(buffer string, cursor int, secret bool) string {
	runes := []rune(buffer)
	if secret {
		masked := make([]rune, len(runes))
		for i := range masked {
			masked[i] = '•'
		}
		runes = masked
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	return string(runes[:cursor]) + "▌" + string(runes[cursor:])
}
