package transport

import (
	"slices"
	"strconv"

	"trip-decoder/internal/document"
)

// NormalizeSequence returns the elements of a sequence field. A true
// sequence is returned as is. A map whose keys are all non-negative decimal
// indices is returned ordered by numeric key ("2" before "10"); gaps close up.
// A nil value is an empty sequence.
func NormalizeSequence(value any, path document.Path) ([]any, error) {
	if value == nil {
		return nil, nil
	}

	if items, ok := document.AsSequence(value); ok {
		return items, nil
	}

	doc, ok := document.AsDocument(value)
	if !ok {
		return nil, document.Mismatch(path, document.KindSequence, value)
	}

	type entry struct {
		index int
		value any
	}

	entries := make([]entry, 0, len(doc))
	seen := make(map[int]string, len(doc))

	for key, v := range doc {
		idx, ok := parseIndex(key)
		if !ok {
			return nil, document.Malformed(path, "map-encoded sequence has non-index key %q", key)
		}

		if prev, dup := seen[idx]; dup {
			return nil, document.Malformed(path, "map-encoded sequence has keys %q and %q for index %d",
				min(prev, key), max(prev, key), idx)
		}

		seen[idx] = key
		entries = append(entries, entry{index: idx, value: v})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		return a.index - b.index
	})

	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}

	return out, nil
}

// parseIndex accepts plain decimal digits only, no sign or spaces.
func parseIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}

	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	i, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}

	return i, true
}
