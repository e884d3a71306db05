package store

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"trip-decoder/internal/document"
)

// FromBSON converts a decoded BSON document into a Document. Dates and
// timestamps become time.Time, object IDs their hex string, Decimal128 a
// float64 and arrays []any; nested documents are converted recursively.
func FromBSON(m bson.M) document.Document {
	out := make(document.Document, len(m))
	for k, v := range m {
		out[k] = fromBSONValue(v)
	}

	return out
}

func fromBSONValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return FromBSON(t)
	case map[string]any:
		return FromBSON(t)
	case bson.D:
		return fromD(t)
	case bson.A:
		return fromA(t)
	case []any:
		return fromA(t)
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil {
			return f
		}

		return t.String()
	case primitive.Null, primitive.Undefined:
		return nil
	default:
		return v
	}
}

func fromD(d bson.D) document.Document {
	out := make(document.Document, len(d))
	for _, e := range d {
		out[e.Key] = fromBSONValue(e.Value)
	}

	return out
}

func fromA(a []any) []any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = fromBSONValue(v)
	}

	return out
}

// bsonID renders a document _id as a string key.
func bsonID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	default:
		if s, ok := fromBSONValue(v).(string); ok {
			return s
		}

		if f, ok := document.Number(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}

		return ""
	}
}
