package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"trip-decoder/internal/document"
)

// FileSource reads a JSON export.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s FileSource) Fetch(ctx context.Context) ([]document.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export %s: %w", s.Path, err)
	}

	snaps, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export %s: %w", s.Path, err)
	}

	return snaps, nil
}

// ParseJSON parses an export. Three layouts are accepted:
//
//	[{...}, {...}]                 an array of documents
//	{"key": {...}, "key2": {...}}  documents keyed by storage key
//	{"id": "t1", ...}              a single document
//
// Numbers are kept as json.Number so integers survive exactly.
func ParseJSON(data []byte) ([]document.Snapshot, error) {
	var root any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(&root); err != nil {
		return nil, err
	}

	switch v := root.(type) {
	case []any:
		snaps := make([]document.Snapshot, 0, len(v))

		for i, item := range v {
			doc, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is not an object", i)
			}

			snaps = append(snaps, document.Snapshot{ID: idOrIndex(doc, i), Data: doc})
		}

		return snaps, nil
	case map[string]any:
		if !isKeyedCollection(v) {
			return []document.Snapshot{{ID: idOrIndex(v, 0), Data: v}}, nil
		}

		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		snaps := make([]document.Snapshot, 0, len(keys))
		for _, k := range keys {
			snaps = append(snaps, document.Snapshot{ID: k, Data: v[k].(map[string]any)})
		}

		return snaps, nil
	default:
		return nil, fmt.Errorf("export must be an object or an array, got %s", document.KindOf(root))
	}
}

// isKeyedCollection reports whether every value of m is an object.
func isKeyedCollection(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}

	for _, v := range m {
		if _, ok := v.(map[string]any); !ok {
			return false
		}
	}

	return true
}

func idOrIndex(doc map[string]any, i int) string {
	if id, ok := doc["id"].(string); ok && id != "" {
		return id
	}

	return "#" + strconv.Itoa(i)
}
