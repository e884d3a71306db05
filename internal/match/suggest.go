package match

// Distance is the edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j, cb := range rb {
		diag := row[0]
		row[0] = j + 1

		for i, ca := range ra {
			sub := diag
			if ca != cb {
				sub++
			}

			diag = row[i+1]
			row[i+1] = min(row[i+1]+1, row[i]+1, sub)
		}
	}

	return row[len(ra)]
}

// Similarity scores the folded forms of a and b between 0 and 1.
func Similarity(a, b string) float64 {
	fa, fb := []rune(Fold(a)), []rune(Fold(b))

	longest := max(len(fa), len(fb))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(string(fa), string(fb)))/float64(longest)
}

// Suggest returns the candidate most similar to s, if it scores at least
// threshold. Ties go to the earlier candidate.
func Suggest(s string, candidates []string, threshold float64) (string, bool) {
	best, bestScore := "", threshold

	found := false

	for _, c := range candidates {
		if score := Similarity(s, c); score > bestScore || (!found && score == bestScore) {
			best, bestScore, found = c, score, true
		}
	}

	return best, found
}
