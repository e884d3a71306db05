package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"trip-decoder/internal/document"
)

func TestFromBSON(t *testing.T) {
	oid := primitive.NewObjectIDFromTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	when := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	dec, err := primitive.ParseDecimal128("199.99")
	require.NoError(t, err)

	doc := FromBSON(bson.M{
		"_id":       oid,
		"startDate": primitive.NewDateTimeFromTime(when),
		"syncedAt":  primitive.Timestamp{T: uint32(when.Unix())},
		"price":     dec,
		"nothing":   primitive.Null{},
		"count":     int32(3),
		"destinationRecommendation": bson.D{
			{Key: "itinerary", Value: bson.M{
				"flights": bson.A{bson.D{{Key: "airline", Value: "ANA"}}},
			}},
		},
	})

	assert.Equal(t, oid.Hex(), doc["_id"])
	assert.Equal(t, when, doc["startDate"])
	assert.Equal(t, when, doc["syncedAt"])
	assert.InDelta(t, 199.99, doc["price"], 1e-9)
	assert.Nil(t, doc["nothing"])
	assert.Equal(t, int32(3), doc["count"])

	a := document.At(doc, document.Root)
	rec, ok := a.Doc("destinationRecommendation")
	require.True(t, ok)

	it, ok := rec.Doc("itinerary")
	require.True(t, ok)

	legs, ok := it.Seq("flights")
	require.True(t, ok)
	require.Len(t, legs, 1)

	leg, err := document.Element(legs, 0, it.Sub("flights"))
	require.NoError(t, err)
	assert.Equal(t, "ANA", leg.String("airline", ""))

	start, err := a.RequireTime("startDate")
	require.NoError(t, err)
	assert.True(t, when.Equal(start))
}

func TestBSONID(t *testing.T) {
	oid := primitive.NewObjectID()

	assert.Equal(t, oid.Hex(), bsonID(oid))
	assert.Equal(t, "trip-1", bsonID("trip-1"))
	assert.Equal(t, "42", bsonID(int64(42)))
	assert.Empty(t, bsonID(nil))
}
