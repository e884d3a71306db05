package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"trip-decoder/internal/config"
	"trip-decoder/internal/logger"
)

// ErrNoSource is returned by Open when the config names no source.
var ErrNoSource = errors.New("no trip source configured: set a file, a mongo uri or a redis addr")

// Open builds the source named by cfg. A file wins over MongoDB, which wins
// over Redis. The returned close function releases any client connection.
func Open(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (Source, func() error, error) {
	log = logger.OrNop(log)
	noop := func() error { return nil }

	switch {
	case cfg.File != "":
		return FileSource{Path: cfg.File}, noop, nil

	case cfg.Mongo.URI != "":
		if cfg.Mongo.Database == "" {
			return nil, noop, errors.New("mongo database is required with a mongo uri")
		}

		client, err := ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, noop, err
		}

		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		log.Debug("reading trips from mongo",
			slog.String("database", cfg.Mongo.Database), slog.String("collection", cfg.Mongo.Collection))

		return NewMongoSource(coll, nil, log), func() error {
			return client.Disconnect(context.Background())
		}, nil

	case cfg.Redis.Addr != "":
		client, err := ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}

		log.Debug("reading trips from redis",
			slog.String("addr", cfg.Redis.Addr), slog.String("pattern", cfg.Redis.Pattern))

		return NewRedisSource(client, cfg.Redis.Pattern, log), client.Close, nil

	default:
		return nil, noop, ErrNoSource
	}
}

// Describe names the source cfg selects, for log lines.
func Describe(cfg config.StoreConfig) string {
	switch {
	case cfg.File != "":
		return fmt.Sprintf("file %s", cfg.File)
	case cfg.Mongo.URI != "":
		return fmt.Sprintf("mongo %s.%s", cfg.Mongo.Database, cfg.Mongo.Collection)
	case cfg.Redis.Addr != "":
		return fmt.Sprintf("redis %s %s", cfg.Redis.Addr, cfg.Redis.Pattern)
	default:
		return "none"
	}
}
