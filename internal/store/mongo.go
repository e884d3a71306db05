package store

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trip-decoder/internal/document"
	"trip-decoder/internal/logger"
)

// MongoSource reads trip documents from a MongoDB collection.
type MongoSource struct {
	coll   *mongo.Collection
	filter any
	log    *slog.Logger
}

// NewMongoSource reads the documents of coll matching filter; a nil filter
// matches everything.
func NewMongoSource(coll *mongo.Collection, filter any, log *slog.Logger) *MongoSource {
	if filter == nil {
		filter = bson.D{}
	}

	return &MongoSource{coll: coll, filter: filter, log: logger.OrNop(log)}
}

// ConnectMongo connects to uri and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// Fetch implements Source. Documents are returned in _id order.
func (s *MongoSource) Fetch(ctx context.Context) ([]document.Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := s.coll.Find(ctx, s.filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.coll.Name(), err)
	}
	defer cur.Close(ctx)

	var snaps []document.Snapshot

	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			s.log.Warn("skipping undecodable BSON document", "collection", s.coll.Name(), "error", err)
			continue
		}

		snaps = append(snaps, document.Snapshot{ID: bsonID(raw["_id"]), Data: FromBSON(raw)})
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.coll.Name(), err)
	}

	s.log.Debug("fetched trip documents", "collection", s.coll.Name(), "count", len(snaps))

	return snaps, nil
}
