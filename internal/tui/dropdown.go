package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// DropdownItem is one selectable choice. Label is what the overlay shows,
// Value is what gets written into the field when applied.
type DropdownItem struct {
	Value string
	Label string
}

// Dropdown is the filterable choice overlay used for the provider type,
// enumerated fields, and discovered models.
type Dropdown struct {
	Title string
	// Target is the form row the applied value goes to.
	Target int
	Items  []DropdownItem
	// Filter is a case-insensitive substring over item values and labels.
	Filter string
	// Selected indexes into Filtered(), not Items.
	Selected int
}

// NewDropdown builds a dropdown over plain string choices.
func NewDropdown(title string, target int, values []string) *Dropdown {
	items := make([]DropdownItem, 0, len(values))
	for _, v := range values {
		items = append(items, DropdownItem{Value: v, Label: v})
	}
	return &Dropdown{Title: title, Target: target, Items: items}
}

// Filtered returns the items matching the current filter, in original order.
// An empty filter matches everything.
func (d *Dropdown) Filtered() []DropdownItem {
	if d.Filter == "" {
		return d.Items
	}
	needle := strings.ToLower(d.Filter)
	var out []DropdownItem
	for _, item := range d.Items {
		if strings.Contains(strings.ToLower(item.Value), needle) ||
			strings.Contains(strings.ToLower(item.Label), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Current returns the selected item and whether one exists.
func (d *Dropdown) Current() (DropdownItem, bool) {
	items := d.Filtered()
	if len(items) == 0 {
		return DropdownItem{}, false
	}
	if d.Selected >= len(items) {
		d.Selected = len(items) - 1
	}
	if d.Selected < 0 {
		d.Selected = 0
	}
	return items[d.Selected], true
}

// MoveUp retreats the selection within the filtered view.
func (d *Dropdown) MoveUp() {
	if d.Selected > 0 {
		d.Selected--
	}
}

// MoveDown advances the selection within the filtered view.
func (d *Dropdown) MoveDown() {
	if d.Selected < len(d.Filtered())-1 {
		d.Selected++
	}
}

// Type appends a printable rune to the filter. Narrowing the filter
// re-clamps the selection so it always points at a visible item.
func (d *Dropdown) Type(r rune) {
	if !unicode.IsPrint(r) {
		return
	}
	d.Filter += string(r)
	if n := len(d.Filtered()); d.Selected >= n {
		if n == 0 {
			d.Selected = 0
		} else {
			d.Selected = n - 1
		}
	}
}

// Backspace removes the last filter rune and resets the selection to the
// top, since the visible set may have grown above the cursor.
func (d *Dropdown) Backspace() {
	if d.Filter == "" {
		return
	}
	runes := []rune(d.Filter)
	d.Filter = string(runes[:len(runes)-1])
	d.Selected = 0
}

// View renders the dropdown modal.
func (d *Dropdown) View(width int) string {
	w := SafeModalWidth(48, width)

	var b strings.Builder
	b.WriteString(SelectedFieldStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("filter: " + d.Filter + "▌"))
	b.WriteString("\n\n")

	items := d.Filtered()
	if len(items) == 0 {
		b.WriteString(SubtleStyle.Render("  no matches"))
	}
	for i, item := range items {
		if i == d.Selected {
			b.WriteString(SelectedMenuItemStyle.Render("→ " + item.Label))
		} else {
			b.WriteString(MenuItemStyle.Render("  " + item.Label))
		}
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("↑/↓ select · type to filter · enter apply · esc cancel"))

	return ModalStyle.Width(w).Render(lipgloss.NewStyle().Width(w - 6).Render(b.String()))
}
