package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRedisValue(t *testing.T) {
	doc, err := parseRedisValue(`{"id":"t1","groupSize":4}`)
	require.NoError(t, err)
	assert.Equal(t, "t1", doc["id"])
	assert.Equal(t, json.Number("4"), doc["groupSize"])

	doc, err = parseRedisValue(nil)
	require.NoError(t, err)
	assert.Nil(t, doc)

	for _, bad := range []any{`[1]`, `null`, `not json`, 12} {
		_, err := parseRedisValue(bad)
		assert.Error(t, err, "%v", bad)
	}
}
