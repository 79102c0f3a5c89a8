package form

import "unicode"

// SelectedField returns the field under the cursor, or nil when the
// selection is on the button row.
func (f *Form) SelectedField() *Field {
	if f.OnButtons() {
		return nil
	}
	return &f.Fields[f.Selected]
}

// StartEditing enters edit mode on the selected field with the cursor at
// the end of the buffer.
func (f *Form) StartEditing() bool {
	fd := f.SelectedField()
	if fd == nil {
		return false
	}
	fd.Cursor = len([]rune(fd.Buffer))
	f.Editing = true
	return true
}

// StopEditing leaves edit mode.
func (f *Form) StopEditing() {
	f.Editing = false
}

// InsertRune inserts a printable rune at the cursor of the field being
// edited. Any successful edit invalidates the last verified hash.
func (f *Form) InsertRune(r rune) {
	fd := f.SelectedField()
	if fd == nil || !f.Editing {
		return
	}
	if !unicode.IsPrint(r) {
		return
	}
	runes := []rune(fd.Buffer)
	if fd.Cursor < 0 {
		fd.Cursor = 0
	}
	if fd.Cursor > len(runes) {
		fd.Cursor = len(runes)
	}
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:fd.Cursor]...)
	out = append(out, r)
	out = append(out, runes[fd.Cursor:]...)
	fd.Buffer = string(out)
	fd.Cursor++
	f.LastVerifiedHash = ""
}

// DeleteBack removes the rune before the cursor.
func (f *Form) DeleteBack() {
	fd := f.SelectedField()
	if fd == nil || !f.Editing {
		return
	}
	runes := []rune(fd.Buffer)
	if fd.Cursor <= 0 || fd.Cursor > len(runes) {
		return
	}
	fd.Buffer = string(append(runes[:fd.Cursor-1:fd.Cursor-1], runes[fd.Cursor:]...))
	fd.Cursor--
	f.LastVerifiedHash = ""
}

// DeleteForward removes the rune under the cursor.
func (f *Form) DeleteForward() {
	fd := f.SelectedField()
	if fd == nil || !f.Editing {
		return
	}
	runes := []rune(fd.Buffer)
	if fd.Cursor < 0 || fd.Cursor >= len(runes) {
		return
	}
	fd.Buffer = string(append(runes[:fd.Cursor:fd.Cursor], runes[fd.Cursor+1:]...))
	f.LastVerifiedHash = ""
}

// CursorLeft moves the edit cursor one rune left.
func (f *Form) CursorLeft() {
	fd := f.SelectedField()
	if fd == nil || !f.Editing {
		return
	}
	if fd.Cursor > 0 {
		fd.Cursor--
	}
}

// CursorRight moves the edit cursor one rune right.
func (f *Form) CursorRight() {
	fd := f.SelectedField()
	if fd == nil || !f.Editing {
		return
	}
	if fd.Cursor < len([]rune(fd.Buffer)) {
		fd.Cursor++
	}
}

// SetBuffer replaces the selected field's buffer wholesale, used when a
// dropdown choice is applied.
func (f *Form) SetBuffer(value string) {
	fd := f.SelectedField()
	if fd == nil {
		return
	}
	if fd.Buffer == value {
		return
	}
	fd.Buffer = value
	fd.Cursor = len([]rune(value))
	f.LastVerifiedHash = ""
}
