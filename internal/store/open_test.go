package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-decoder/internal/config"
)

func TestOpen(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		src, closeFn, err := Open(t.Context(), config.StoreConfig{File: "trips.json"}, nil)
		require.NoError(t, err)
		assert.Equal(t, FileSource{Path: "trips.json"}, src)
		assert.NoError(t, closeFn())
	})

	t.Run("none", func(t *testing.T) {
		_, closeFn, err := Open(t.Context(), config.StoreConfig{}, nil)
		assert.ErrorIs(t, err, ErrNoSource)
		assert.NoError(t, closeFn())
	})

	t.Run("mongo without database", func(t *testing.T) {
		_, _, err := Open(t.Context(), config.StoreConfig{Mongo: config.MongoConfig{URI: "mongodb://localhost"}}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database")
	})
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "file a.json", Describe(config.StoreConfig{File: "a.json"}))
	assert.Equal(t, "mongo travel.trips", Describe(config.StoreConfig{
		Mongo: config.MongoConfig{URI: "mongodb://x", Database: "travel", Collection: "trips"},
	}))
	assert.Equal(t, "redis localhost:6379 trip:*", Describe(config.StoreConfig{
		Redis: config.RedisConfig{Addr: "localhost:6379", Pattern: "trip:*"},
	}))
	assert.Equal(t, "none", Describe(config.StoreConfig{}))
}
