package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"inProgress", "inprogress"},
		{"in_progress", "inprogress"},
		{"In Progress", "inprogress"},
		{"IN-PROGRESS", "inprogress"},
		{"  completed ", "completed"},
		{"car.rental", "carrental"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fold(tt.input))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("paymentType", "payment_type"))
	assert.True(t, Equal("Hybrid", "hybrid"))
	assert.False(t, Equal("train", "trains"))
}

func TestLookup(t *testing.T) {
	table := map[string]int{"inprogress": 1, "done": 2}

	v, ok := Lookup(table, "In_Progress")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = Lookup(table, "pending")
	assert.False(t, ok)
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"héllo", "hello", 1},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("In Progress", "inProgress"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", " "), 1e-9)
	assert.InDelta(t, 1-1.0/9, Similarity("Completed", "complted"), 1e-9)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"pending", "inProgress", "completed", "cancelled", "failed"}

	got, ok := Suggest("compleeted", candidates, 0.7)
	assert.True(t, ok)
	assert.Equal(t, "completed", got)

	got, ok = Suggest("in progres", candidates, 0.7)
	assert.True(t, ok)
	assert.Equal(t, "inProgress", got)

	_, ok = Suggest("zzz", candidates, 0.7)
	assert.False(t, ok)

	_, ok = Suggest("anything", nil, 0)
	assert.False(t, ok)
}
