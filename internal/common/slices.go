package common

// Filter returns the elements of s for which keep returns true.
// The result is nil when nothing is kept.
func Filter[S ~[]E, E any](s S, keep func(E) bool) S {
	var out S

	for _, e := range s {
		if keep(e) {
			out = append(out, e)
		}
	}

	return out
}
