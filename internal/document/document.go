package document

import "strconv"

// Document is an untyped tree of string keys to values.
type Document map[string]any

// Snapshot pairs a document with the key it is stored under.
// The key is only used to identify the document in diagnostics.
type Snapshot struct {
	ID   string
	Data Document
}

// Path locates a value inside a document tree, e.g. "trips[3].itinerary.id".
// Paths are immutable; Field and Index return new paths.
type Path string

// Root is the empty path.
const Root Path = ""

// Field returns the path of a named child.
func (p Path) Field(name string) Path {
	if p == Root {
		return Path(name)
	}

	return p + "." + Path(name)
}

// Index returns the path of a sequence element.
func (p Path) Index(i int) Path {
	return p + "[" + Path(strconv.Itoa(i)) + "]"
}

// String returns the dotted form of the path.
func (p Path) String() string {
	if p == Root {
		return "(root)"
	}

	return string(p)
}

// AsDocument reports whether v is a nested document.
func AsDocument(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, m != nil
	case map[string]any:
		return Document(m), m != nil
	default:
		return nil, false
	}
}

// AsSequence reports whether v is a true ordered sequence.
// Maps are never sequences here, even when their keys look like indices.
func AsSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []Document:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}

		return out, true
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}

		return out, true
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}

		return out, true
	default:
		return nil, false
	}
}

// Element returns an accessor for items[i], or a TypeMismatch when the
// element is not a document.
func Element(items []any, i int, path Path) (Accessor, error) {
	elemPath := path.Index(i)

	doc, ok := AsDocument(items[i])
	if !ok {
		return Accessor{}, Mismatch(elemPath, KindDocument, items[i])
	}

	return At(doc, elemPath), nil
}
