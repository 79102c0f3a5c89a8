package form

import (
	"testing"

	"github.com/chi-llm/chi-tui/internal/chillm"
	"github.com/chi-llm/chi-tui/internal/scratch"
)

func hostPortSchema() []chillm.FieldSchema {
	return []chillm.FieldSchema{
		{Name: "host", Kind: "string", Default: "localhost"},
		{Name: "port", Kind: "int", Default: "11434"},
	}
}

func testEntry() scratch.Entry {
	return scratch.Entry{
		ID:     "p1",
		Name:   "Ollama",
		Type:   "ollama",
		Config: map[string]any{"type": "ollama", "host": "example.org"},
	}
}

func TestOpenFillsBuffers(t *testing.T) {
	f := Open(testEntry(), hostPortSchema())

	if got := f.Fields[0].Buffer; got != "ollama" {
		t.Errorf("type buffer = %q, want ollama", got)
	}
	// Configured value wins over the schema default.
	if got := f.Fields[1].Buffer; got != "example.org" {
		t.Errorf("host buffer = %q, want example.org", got)
	}
	// Unconfigured field falls back to the default.
	if got := f.Fields[2].Buffer; got != "11434" {
		t.Errorf("port buffer = %q, want 11434", got)
	}
}

func TestOpenEmptyConfigValueFallsBackToDefault(t *testing.T) {
	e := testEntry()
	e.Config["host"] = ""
	f := Open(e, hostPortSchema())

	if got := f.Fields[1].Buffer; got != "localhost" {
		t.Errorf("host buffer = %q, want the schema default localhost", got)
	}
	// A field with no default stays empty.
	e.Config["model"] = ""
	f = Open(e, append(hostPortSchema(), chillm.FieldSchema{Name: "model", Kind: "string"}))
	if got := f.Fields[3].Buffer; got != "" {
		t.Errorf("model buffer = %q, want empty", got)
	}
}

func TestHashDeterministic(t *testing.T) {
	a := Open(testEntry(), hostPortSchema())
	b := Open(testEntry(), hostPortSchema())
	if a.Hash() != b.Hash() {
		t.Errorf("identical forms hash differently: %s vs %s", a.Hash(), b.Hash())
	}

	b.Selected = 1
	b.StartEditing()
	b.InsertRune('x')
	if a.Hash() == b.Hash() {
		t.Error("edited form should hash differently")
	}
}

func TestSaveGate(t *testing.T) {
	f := Open(testEntry(), hostPortSchema())

	if !f.CanSave() {
		t.Error("clean form should be saveable")
	}

	// Edit host to value "a": dirty and unverified.
	f.Selected = 1
	f.SetBuffer("a")
	if f.CanSave() {
		t.Error("dirty unverified form should not be saveable")
	}

	// Edit to "b", then pass a test for that content.
	f.SetBuffer("b")
	f.MarkTested(f.Hash())
	if !f.CanSave() {
		t.Error("form should be saveable after its content passed a test")
	}

	// Further edit to "c" must invalidate the verification.
	f.SetBuffer("c")
	if f.CanSave() {
		t.Error("edit after verification should block saving again")
	}

	// Restoring the verified content does not restore the verdict.
	f.SetBuffer("b")
	if f.CanSave() {
		t.Error("re-entering verified text should still require a fresh test")
	}
}

func TestGroupJumpNavigation(t *testing.T) {
	f := Open(testEntry(), hostPortSchema())
	// Rows: type, host, port, then Test/Save/Cancel.

	f.Selected = len(f.Fields) - 1
	f.MoveDown()
	if !f.OnButtons() || f.ButtonIndex() != ButtonTest {
		t.Fatalf("down from last field should land on Test, got selected %d", f.Selected)
	}

	// Down from the button row stays put.
	f.MoveDown()
	if f.ButtonIndex() != ButtonTest {
		t.Errorf("down on button row moved selection to %d", f.Selected)
	}

	// Left/right cycle within the row.
	f.MoveRight()
	if f.ButtonIndex() != ButtonSave {
		t.Errorf("right from Test = button %d, want Save", f.ButtonIndex())
	}
	f.MoveLeft()
	f.MoveLeft()
	if f.ButtonIndex() != ButtonCancel {
		t.Errorf("two lefts from Save = button %d, want Cancel", f.ButtonIndex())
	}

	// Up from anywhere on the row jumps to the last field.
	f.MoveUp()
	if f.Selected != len(f.Fields)-1 {
		t.Errorf("up from buttons selected row %d, want last field %d", f.Selected, len(f.Fields)-1)
	}
}

func TestTabWrapsAround(t *testing.T) {
	f := Open(testEntry(), hostPortSchema())
	total := f.RowCount()
	for i := 0; i < total; i++ {
		f.TabNext()
	}
	if f.Selected != 0 {
		t.Errorf("tab across all rows should wrap to 0, got %d", f.Selected)
	}
	f.TabPrev()
	if f.Selected != total-1 {
		t.Errorf("shift-tab from 0 should wrap to %d, got %d", total-1, f.Selected)
	}
}

func TestScrollFollowsSelection(t *testing.T) {
	var fields []chillm.FieldSchema
	for _, name := range []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8"} {
		fields = append(fields, chillm.FieldSchema{Name: name, Kind: "string"})
	}
	f := Open(testEntry(), fields)
	// Rows: type + 8 fields, window of 4.

	if got := f.EnsureVisible(4); got != 0 {
		t.Errorf("initial scroll = %d, want 0", got)
	}

	// Walking down past the window scrolls it.
	for i := 0; i < 6; i++ {
		f.MoveDown()
	}
	if got := f.EnsureVisible(4); got != 3 {
		t.Errorf("scroll after selecting row 6 = %d, want 3", got)
	}

	// The button row keeps the last field visible.
	f.Selected = f.RowCount() - 1
	if got := f.EnsureVisible(4); got != len(f.Fields)-4 {
		t.Errorf("scroll on button row = %d, want %d", got, len(f.Fields)-4)
	}

	// Jumping back to the top scrolls back up.
	f.Selected = 0
	if got := f.EnsureVisible(4); got != 0 {
		t.Errorf("scroll after returning to top = %d, want 0", got)
	}

	// A window taller than the field list never scrolls.
	f.Selected = 5
	if got := f.EnsureVisible(50); got != 0 {
		t.Errorf("oversized window scroll = %d, want 0", got)
	}
}

func TestApplyToEntryCoercesInts(t *testing.T) {
	f := Open(testEntry(), hostPortSchema())
	e := testEntry()

	// Valid integer text becomes a number.
	f.Fields[2].Buffer = "8080"
	f.ApplyToEntry(&e)
	if got, ok := e.Config["port"].(int); !ok || got != 8080 {
		t.Errorf("port = %#v, want int 8080", e.Config["port"])
	}

	// Unparseable input survives as the literal string.
	f.Fields[2].Buffer = "eight"
	f.ApplyToEntry(&e)
	if got, ok := e.Config["port"].(string); !ok || got != "eight" {
		t.Errorf("port = %#v, want string \"eight\"", e.Config["port"])
	}

	// Empty buffers drop the key.
	f.Fields[1].Buffer = ""
	f.ApplyToEntry(&e)
	if _, ok := e.Config["host"]; ok {
		t.Error("empty host buffer should remove the key")
	}
}

func TestNoEditSaveIsIdempotent(t *testing.T) {
	e := testEntry()
	f := Open(e, hostPortSchema())

	before := f.InitialHash
	f.ApplyToEntry(&e)
	if f.Hash() != before {
		t.Error("no-edit save changed the content hash")
	}

	// The prefilled port default was never in the config and must not
	// appear after an untouched save.
	if _, ok := e.Config["port"]; ok {
		t.Errorf("untouched default leaked into config: %v", e.Config)
	}
	if e.Config["host"] != "example.org" {
		t.Errorf("host = %v, want example.org", e.Config["host"])
	}

	// Reopening against the saved entry hashes identically.
	if got := Open(e, hostPortSchema()).InitialHash; got != before {
		t.Errorf("reopened hash = %s, want %s", got, before)
	}
}

func TestRuneEditing(t *testing.T) {
	f := Open(testEntry(), hostPortSchema())
	f.Selected = 1
	f.SetBuffer("héllo")
	f.StartEditing()

	f.DeleteBack()
	if got := f.Fields[1].Buffer; got != "héll" {
		t.Errorf("after backspace buffer = %q, want héll", got)
	}

	f.CursorLeft()
	f.CursorLeft()
	f.CursorLeft()
	f.InsertRune('日')
	if got := f.Fields[1].Buffer; got != "h日éll" {
		t.Errorf("after insert buffer = %q, want h日éll", got)
	}

	f.DeleteForward()
	if got := f.Fields[1].Buffer; got != "h日ll" {
		t.Errorf("after delete buffer = %q, want h日ll", got)
	}
}

func TestEditClearsVerification(t *testing.T) {
	f := Open(testEntry(), hostPortSchema())
	f.MarkTested(f.Hash())
	f.Selected = 1
	f.StartEditing()
	f.InsertRune('z')
	if f.LastVerifiedHash != "" {
		t.Error("insert should clear the verified hash")
	}
}
