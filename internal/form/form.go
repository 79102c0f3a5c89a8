package form

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/chi-llm/chi-tui/internal/chillm"
	"github.com/chi-llm/chi-tui/internal/scratch"
)

// ButtonCount is the size of the action row below the fields.
const ButtonCount = 3

// Button indices within the action row.
const (
	ButtonTest = iota
	ButtonSave
	ButtonCancel
)

// Field is one editable row. The buffer holds the display text; Cursor is
// a rune offset into it.
type Field struct {
	Schema chillm.FieldSchema
	Buffer string
	Cursor int
}

// Form is the per-provider editing surface. Fields[0] is always the
// synthetic type row so the provider type participates in content hashing
// like any other field.
type Form struct {
	EntryID string
	Fields  []Field

	// Selected indexes rows: 0..len(Fields)-1 are fields, len(Fields) to
	// len(Fields)+ButtonCount-1 are the action buttons.
	Selected int
	Editing  bool
	Message  string
	Scroll   int

	// InitialHash is the content hash captured at open time; the form is
	// dirty when the current hash differs from it.
	InitialHash string

	// LastVerifiedHash is the content hash most recently confirmed by a
	// passing provider test. Any edit clears it.
	LastVerifiedHash string
}

// Open builds a form for an entry using the field schema of its type.
// Buffers fill from the entry's config, falling back to schema defaults.
func Open(entry scratch.Entry, fields []chillm.FieldSchema) *Form {
	f := &Form{EntryID: entry.ID}

	typeField := Field{
		Schema: chillm.FieldSchema{Name: "type", Kind: "string", Required: true},
		Buffer: entry.Type,
	}
	f.Fields = append(f.Fields, typeField)

	for _, fs := range fields {
		buf := ""
		if v, ok := entry.Config[fs.Name]; ok {
			buf = stringify(v)
		}
		// An empty configured value is as good as absent.
		if buf == "" {
			buf = fs.Default
		}
		f.Fields = append(f.Fields, Field{Schema: fs, Buffer: buf})
	}

	f.InitialHash = f.Hash()
	return f
}

// Hash computes a deterministic content hash over field names and buffers.
// Fields contribute in display order; a unit separator keeps adjacent pairs
// from colliding.
func (f *Form) Hash() string {
	h := fnv.New64a()
	for _, fd := range f.Fields {
		h.Write([]byte(fd.Schema.Name))
		h.Write([]byte{'='})
		h.Write([]byte(fd.Buffer))
		h.Write([]byte{0x1f})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Dirty reports whether any buffer changed since the form was opened.
func (f *Form) Dirty() bool {
	return f.Hash() != f.InitialHash
}

// CanSave implements the save gate: a clean form is always saveable, a
// dirty one only when its current content passed a provider test.
func (f *Form) CanSave() bool {
	h := f.Hash()
	return h == f.InitialHash || h == f.LastVerifiedHash
}

// MarkTested records a passing test for the given content hash.
func (f *Form) MarkTested(hash string) {
	f.LastVerifiedHash = hash
}

// ApplyToEntry writes the buffers back into the entry's config map.
// Integer fields are coerced; unparseable input is kept as the raw string
// so the user's text survives a save/reopen cycle. A buffer still sitting
// at its schema default for a key the config never had is not written, so
// a no-edit save leaves the config equivalent to before.
func (f *Form) ApplyToEntry(e *scratch.Entry) {
	if e.Config == nil {
		e.Config = map[string]any{}
	}
	for _, fd := range f.Fields {
		if fd.Schema.Name == "type" {
			e.Type = fd.Buffer
			e.Config["type"] = fd.Buffer
			continue
		}
		if fd.Buffer == "" {
			delete(e.Config, fd.Schema.Name)
			continue
		}
		if _, existed := e.Config[fd.Schema.Name]; !existed && fd.Buffer == fd.Schema.Default {
			continue
		}
		if fd.Schema.Kind == "int" || fd.Schema.Kind == "integer" {
			if n, err := strconv.Atoi(fd.Buffer); err == nil {
				e.Config[fd.Schema.Name] = n
				continue
			}
		}
		e.Config[fd.Schema.Name] = fd.Buffer
	}
}

// Values returns the current buffers keyed by field name. Used to feed
// discovery and test invocations without mutating the entry.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, fd := range f.Fields {
		out[fd.Schema.Name] = fd.Buffer
	}
	return out
}

// Type returns the current provider type buffer.
func (f *Form) Type() string {
	return f.Fields[0].Buffer
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
