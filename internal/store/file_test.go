package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Layouts(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantIDs []string
	}{
		{"array", `[{"id":"t1"},{"userId":"u2"}]`, []string{"t1", "#1"}},
		{"keyed", `{"b":{"id":"t2"},"a":{"id":"t1"}}`, []string{"a", "b"}},
		{"single", `{"id":"t1","destination":"Tokyo"}`, []string{"t1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps, err := ParseJSON([]byte(tt.in))
			require.NoError(t, err)
			require.Len(t, snaps, len(tt.wantIDs))

			for i, id := range tt.wantIDs {
				assert.Equal(t, id, snaps[i].ID)
			}
		})
	}
}

func TestParseJSON_KeepsNumbers(t *testing.T) {
	snaps, err := ParseJSON([]byte(`[{"id":"t1","startDate":1717200000,"cost":{"cash":12.50}}]`))
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	assert.Equal(t, json.Number("1717200000"), snaps[0].Data["startDate"])
}

func TestParseJSON_Errors(t *testing.T) {
	for _, in := range []string{`"trips"`, `[1, 2]`, `{`, ``} {
		_, err := ParseJSON([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"t1"},{"id":"t2"}]`), 0o600))

	snaps, err := FileSource{Path: path}.Fetch(t.Context())
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Fetch(t.Context())
	require.Error(t, err)
}
