package document

import (
	"encoding/json"
	"time"
)

//go:generate go tool stringer -type=Kind,ErrorKind -linecomment -output=kind_string.go

// Kind classifies a raw document value.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindString      // string
	KindNumber      // number
	KindBool        // boolean
	KindNull        // null
	KindDocument    // document
	KindSequence    // sequence
	KindTimestamp   // timestamp
	KindUnsupported // unsupported
)

// KindOf returns the kind of a raw value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return KindNumber
	case time.Time:
		return KindTimestamp
	}

	if _, ok := AsDocument(v); ok {
		return KindDocument
	}

	if _, ok := AsSequence(v); ok {
		return KindSequence
	}

	return KindUnsupported
}

// IsScalar reports whether the kind is a leaf value.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindNumber, KindBool, KindNull, KindTimestamp:
		return true
	default:
		return false
	}
}
