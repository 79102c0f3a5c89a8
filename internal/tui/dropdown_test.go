package tui

import "testing"

func modelsDropdown() *Dropdown {
	return &Dropdown{
		Title:  "Select model",
		Target: 3,
		Items: []DropdownItem{
			{Value: "llama-3.2-1b", Label: "llama-3.2-1b ✓"},
			{Value: "llama-3.2-3b", Label: "llama-3.2-3b"},
			{Value: "qwen2.5-7b", Label: "qwen2.5-7b ✓"},
			{Value: "phi-3-mini", Label: "phi-3-mini"},
		},
	}
}

func TestDropdownFilterIsCaseInsensitiveSubstring(t *testing.T) {
	d := modelsDropdown()
	d.Filter = "LLAMA"
	got := d.Filtered()
	if len(got) != 2 {
		t.Fatalf("Filtered() returned %d items, want 2", len(got))
	}
	if got[0].Value != "llama-3.2-1b" || got[1].Value != "llama-3.2-3b" {
		t.Errorf("filter changed item order: %v", got)
	}
}

func TestDropdownSubstringKeepsOrder(t *testing.T) {
	d := NewDropdown("t", 0, []string{"alpha", "beta", "gamma"})
	d.Selected = 2
	d.Type('a')
	got := d.Filtered()
	// All three contain "a"; order must be the original one.
	if len(got) != 3 || got[0].Value != "alpha" || got[1].Value != "beta" || got[2].Value != "gamma" {
		t.Errorf("Filtered() = %v, want alpha beta gamma", got)
	}
	if _, ok := d.Current(); !ok {
		t.Error("selection should still resolve after filtering")
	}
}

func TestDropdownEmptyFilterMatchesAll(t *testing.T) {
	d := modelsDropdown()
	if got := len(d.Filtered()); got != 4 {
		t.Errorf("empty filter matched %d items, want 4", got)
	}
}

func TestDropdownNarrowingReclampsSelection(t *testing.T) {
	d := modelsDropdown()
	d.Selected = 3 // phi-3-mini
	for _, r := range "qwen" {
		d.Type(r)
	}
	items := d.Filtered()
	if len(items) != 1 {
		t.Fatalf("filter qwen matched %d items, want 1", len(items))
	}
	item, ok := d.Current()
	if !ok || item.Value != "qwen2.5-7b" {
		t.Errorf("Current() = %v %v, want qwen2.5-7b", item, ok)
	}
}

func TestDropdownBackspaceResetsSelection(t *testing.T) {
	d := modelsDropdown()
	d.Type('q')
	d.Backspace()
	if d.Filter != "" {
		t.Errorf("filter = %q after backspace, want empty", d.Filter)
	}
	if d.Selected != 0 {
		t.Errorf("selection = %d after backspace, want 0", d.Selected)
	}
}

func TestDropdownIgnoresUnprintableRunes(t *testing.T) {
	d := modelsDropdown()
	d.Type('\t')
	d.Type('\x1b')
	if d.Filter != "" {
		t.Errorf("unprintable runes leaked into filter: %q", d.Filter)
	}
}

func TestDropdownNoMatches(t *testing.T) {
	d := modelsDropdown()
	for _, r := range "zzz" {
		d.Type(r)
	}
	if _, ok := d.Current(); ok {
		t.Error("Current() should report no item when nothing matches")
	}
	d.MoveDown()
	d.MoveUp()
}
