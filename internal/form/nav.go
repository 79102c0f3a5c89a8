package form

// RowCount is the total number of selectable rows including the action
// buttons.
func (f *Form) RowCount() int {
	return len(f.Fields) + ButtonCount
}

// OnButtons reports whether the selection sits on the action row.
func (f *Form) OnButtons() bool {
	return f.Selected >= len(f.Fields)
}

// ButtonIndex returns the selected button, or -1 when a field is selected.
func (f *Form) ButtonIndex() int {
	if !f.OnButtons() {
		return -1
	}
	return f.Selected - len(f.Fields)
}

// MoveDown advances the selection. Moving down from a field lands on the
// first button; moving down within the button row is a no-op since the
// buttons form the last logical row.
func (f *Form) MoveDown() {
	if f.OnButtons() {
		return
	}
	f.Selected++
}

// MoveUp retreats the selection. From anywhere on the button row it jumps
// to the last field rather than walking button by button.
func (f *Form) MoveUp() {
	if f.OnButtons() {
		if len(f.Fields) > 0 {
			f.Selected = len(f.Fields) - 1
		}
		return
	}
	if f.Selected > 0 {
		f.Selected--
	}
}

// MoveLeft cycles the button selection. No effect on field rows.
func (f *Form) MoveLeft() {
	if !f.OnButtons() {
		return
	}
	i := f.ButtonIndex()
	i = (i + ButtonCount - 1) % ButtonCount
	f.Selected = len(f.Fields) + i
}

// MoveRight cycles the button selection. No effect on field rows.
func (f *Form) MoveRight() {
	if !f.OnButtons() {
		return
	}
	i := (f.ButtonIndex() + 1) % ButtonCount
	f.Selected = len(f.Fields) + i
}

// TabNext advances with wraparound over all rows, treating the button row
// as three stops.
func (f *Form) TabNext() {
	f.Selected = (f.Selected + 1) % f.RowCount()
}

// TabPrev retreats with wraparound over all rows.
func (f *Form) TabPrev() {
	f.Selected = (f.Selected + f.RowCount() - 1) % f.RowCount()
}

// EnsureVisible adjusts Scroll so the selected row sits inside a window of
// the given height. The button row keeps the last field in view. Returns
// the first visible field index.
func (f *Form) EnsureVisible(rows int) int {
	if rows < 1 {
		rows = 1
	}
	sel := f.Selected
	if sel >= len(f.Fields) {
		sel = len(f.Fields) - 1
	}
	if sel < f.Scroll {
		f.Scroll = sel
	}
	if sel >= f.Scroll+rows {
		f.Scroll = sel - rows + 1
	}
	if max := len(f.Fields) - rows; f.Scroll > max {
		f.Scroll = max
	}
	if f.Scroll < 0 {
		f.Scroll = 0
	}
	return f.Scroll
}
