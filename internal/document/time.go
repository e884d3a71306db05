package document

import (
	"math"
	"time"
)

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e11 seconds lies in the year 5138, so larger values are milliseconds.
const epochMillisThreshold = 1e11

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// toTime coerces the timestamp encodings observed in stored documents:
// native time values, RFC 3339 strings, epoch numbers and
// {seconds, nanoseconds} maps as written by document store exports.
func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), true
			}
		}

		return time.Time{}, false
	}

	if f, ok := toFloat(v); ok {
		return fromEpoch(f)
	}

	if doc, ok := AsDocument(v); ok {
		return fromSecondsDoc(At(doc, Root))
	}

	return time.Time{}, false
}

func fromEpoch(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}

	if math.Abs(f) >= epochMillisThreshold {
		return time.UnixMilli(int64(f)).UTC(), true
	}

	sec, frac := math.Modf(f)

	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

func fromSecondsDoc(a Accessor) (time.Time, bool) {
	key, ok := a.First("seconds", "_seconds")
	if !ok {
		return time.Time{}, false
	}

	sec, ok := a.LookupInt(key)
	if !ok {
		return time.Time{}, false
	}

	var nanos int
	if nkey, ok := a.First("nanoseconds", "_nanoseconds", "nanos"); ok {
		nanos = a.Int(nkey, 0)
	}

	return time.Unix(int64(sec), int64(nanos)).UTC(), true
}
