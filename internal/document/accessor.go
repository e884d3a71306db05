package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Accessor reads typed fields from one document level.
type Accessor struct {
	doc  Document
	path Path
}

// At returns an accessor positioned at path.
func At(doc Document, path Path) Accessor {
	return Accessor{doc: doc, path: path}
}

// Path returns the path of the document the accessor reads.
func (a Accessor) Path() Path {
	return a.path
}

// Sub returns the path of a field of this document.
func (a Accessor) Sub(key string) Path {
	return a.path.Field(key)
}

// Document returns the underlying document.
func (a Accessor) Document() Document {
	return a.doc
}

// Raw returns the value under key. Nulls are reported as absent.
func (a Accessor) Raw(key string) (any, bool) {
	v, ok := a.doc[key]
	if !ok || v == nil {
		return nil, false
	}

	return v, true
}

// Has reports whether key holds a non-null value.
func (a Accessor) Has(key string) bool {
	_, ok := a.Raw(key)
	return ok
}

// First returns the first of keys that holds a non-null value.
func (a Accessor) First(keys ...string) (string, bool) {
	for _, k := range keys {
		if a.Has(k) {
			return k, true
		}
	}

	return "", false
}

// --- strings ---

// LookupString returns the string under key.
func (a Accessor) LookupString(key string) (string, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// String returns the string under key, or def.
func (a Accessor) String(key, def string) string {
	if s, ok := a.LookupString(key); ok {
		return s
	}

	return def
}

// RequireString returns the string under key.
// Blank strings count as missing: a required identifier cannot be empty.
func (a Accessor) RequireString(key string) (string, error) {
	v, ok := a.Raw(key)
	if !ok {
		return "", Missing(a.Sub(key))
	}

	s, ok := v.(string)
	if !ok {
		return "", Mismatch(a.Sub(key), KindString, v)
	}

	if strings.TrimSpace(s) == "" {
		return "", Missing(a.Sub(key))
	}

	return s, nil
}

// Text returns the value under key as display text. Numbers are formatted,
// so free-text fields stored as numbers by some producers still read.
func (a Accessor) Text(key, def string) string {
	v, ok := a.Raw(key)
	if !ok {
		return def
	}

	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	}

	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return def
}

// Strings returns a string list under key. A single string is read as a
// one-element list; non-string elements are skipped. Absent yields nil.
func (a Accessor) Strings(key string) []string {
	v, ok := a.Raw(key)
	if !ok {
		return nil
	}

	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil
		}

		return []string{s}
	}

	items, ok := AsSequence(v)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// StringMap returns the string-valued entries of the document under key.
// The result is never nil.
func (a Accessor) StringMap(key string) map[string]string {
	out := map[string]string{}

	child, ok := a.Doc(key)
	if !ok {
		return out
	}

	for k := range child.doc {
		if s, ok := child.LookupString(k); ok {
			out[k] = s
		}
	}

	return out
}

// --- numbers ---

// LookupFloat returns the number under key.
func (a Accessor) LookupFloat(key string) (float64, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return 0, false
	}

	return toFloat(v)
}

// Float returns the number under key, or def.
func (a Accessor) Float(key string, def float64) float64 {
	if f, ok := a.LookupFloat(key); ok {
		return f
	}

	return def
}

// RequireFloat returns the number under key.
func (a Accessor) RequireFloat(key string) (float64, error) {
	v, ok := a.Raw(key)
	if !ok {
		return 0, Missing(a.Sub(key))
	}

	f, ok := toFloat(v)
	if !ok {
		return 0, Mismatch(a.Sub(key), KindNumber, v)
	}

	return f, nil
}

// LookupInt returns the integer under key. Integral floats are accepted.
func (a Accessor) LookupInt(key string) (int, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return 0, false
	}

	return toInt(v)
}

// Int returns the integer under key, or def.
func (a Accessor) Int(key string, def int) int {
	if i, ok := a.LookupInt(key); ok {
		return i
	}

	return def
}

// RequireInt returns the integer under key.
func (a Accessor) RequireInt(key string) (int, error) {
	v, ok := a.Raw(key)
	if !ok {
		return 0, Missing(a.Sub(key))
	}

	i, ok := toInt(v)
	if !ok {
		return 0, Mismatch(a.Sub(key), KindNumber, v)
	}

	return i, nil
}

// --- booleans ---

// LookupBool returns the boolean under key.
func (a Accessor) LookupBool(key string) (bool, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return false, false
	}

	b, ok := v.(bool)

	return b, ok
}

// Bool returns the boolean under key, or def.
func (a Accessor) Bool(key string, def bool) bool {
	if b, ok := a.LookupBool(key); ok {
		return b
	}

	return def
}

// RequireBool returns the boolean under key.
func (a Accessor) RequireBool(key string) (bool, error) {
	v, ok := a.Raw(key)
	if !ok {
		return false, Missing(a.Sub(key))
	}

	b, ok := v.(bool)
	if !ok {
		return false, Mismatch(a.Sub(key), KindBool, v)
	}

	return b, nil
}

// --- nested documents and sequences ---

// Doc returns an accessor for the nested document under key.
func (a Accessor) Doc(key string) (Accessor, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return Accessor{}, false
	}

	doc, ok := AsDocument(v)
	if !ok {
		return Accessor{}, false
	}

	return At(doc, a.Sub(key)), true
}

// RequireDoc returns an accessor for the nested document under key.
func (a Accessor) RequireDoc(key string) (Accessor, error) {
	v, ok := a.Raw(key)
	if !ok {
		return Accessor{}, Missing(a.Sub(key))
	}

	doc, ok := AsDocument(v)
	if !ok {
		return Accessor{}, Mismatch(a.Sub(key), KindDocument, v)
	}

	return At(doc, a.Sub(key)), nil
}

// Seq returns the sequence under key.
func (a Accessor) Seq(key string) ([]any, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return nil, false
	}

	return AsSequence(v)
}

// RequireSeq returns the sequence under key.
func (a Accessor) RequireSeq(key string) ([]any, error) {
	v, ok := a.Raw(key)
	if !ok {
		return nil, Missing(a.Sub(key))
	}

	items, ok := AsSequence(v)
	if !ok {
		return nil, Mismatch(a.Sub(key), KindSequence, v)
	}

	return items, nil
}

// --- timestamps ---

// LookupTime returns the timestamp under key.
func (a Accessor) LookupTime(key string) (time.Time, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return time.Time{}, false
	}

	return toTime(v)
}

// Time returns the timestamp under key, or the zero time.
func (a Accessor) Time(key string) time.Time {
	t, _ := a.LookupTime(key)
	return t
}

// RequireTime returns the timestamp under key.
func (a Accessor) RequireTime(key string) (time.Time, error) {
	v, ok := a.Raw(key)
	if !ok {
		return time.Time{}, Missing(a.Sub(key))
	}

	t, ok := toTime(v)
	if !ok {
		return time.Time{}, Mismatch(a.Sub(key), KindTimestamp, v)
	}

	return t, nil
}

// --- coercions ---

// Number reports whether v is a number and returns it as a float64.
func Number(v any) (float64, bool) {
	return toFloat(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}

	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}

	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}

	return int(f), true
}
