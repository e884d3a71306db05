package transport

import (
	"trip-decoder/internal/common"
	"trip-decoder/internal/match"
)

// Type is a transport mode.
type Type int

const (
	// Unspecified means no mode was declared.
	Unspecified Type = iota
	Flight
	Train
	Bus
	Ferry
	Car
)

// String returns the document spelling of the mode.
func (t Type) String() string {
	switch t {
	case Unspecified:
		return "unspecified"
	case Flight:
		return "flight"
	case Train:
		return "train"
	case Bus:
		return "bus"
	case Ferry:
		return "ferry"
	case Car:
		return "car"
	default:
		return common.UnknownStr
	}
}

// MarshalText encodes the mode by name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// HasRoute reports whether the mode uses departure and arrival endpoints.
func (t Type) HasRoute() bool {
	switch t {
	case Flight, Train, Bus, Ferry:
		return true
	default:
		return false
	}
}

// Spellings seen in stored documents, folded.
var typeNames = map[string]Type{
	"flight":    Flight,
	"flights":   Flight,
	"air":       Flight,
	"plane":     Flight,
	"airplane":  Flight,
	"train":     Train,
	"rail":      Train,
	"bus":       Bus,
	"coach":     Bus,
	"ferry":     Ferry,
	"boat":      Ferry,
	"car":       Car,
	"carrental": Car,
	"rental":    Car,
	"rentalcar": Car,
}

// ParseType parses a discriminator value. Case and separators are ignored.
func ParseType(s string) (Type, bool) {
	return match.Lookup(typeNames, s)
}
