package trip

import (
	"time"

	"trip-decoder/internal/common"
	"trip-decoder/internal/itinerary"
)

// ItineraryState tells why a trip has or lacks an itinerary.
type ItineraryState int

const (
	// ItineraryAbsent means the document has no itinerary.
	ItineraryAbsent ItineraryState = iota
	// ItineraryAvailable means the itinerary decoded.
	ItineraryAvailable
	// ItineraryUnavailable means the document has an itinerary that did not decode.
	ItineraryUnavailable
)

// String returns the state name.
func (s ItineraryState) String() string {
	switch s {
	case ItineraryAbsent:
		return "absent"
	case ItineraryAvailable:
		return "available"
	case ItineraryUnavailable:
		return "unavailable"
	default:
		return common.UnknownStr
	}
}

// MarshalText encodes the state by name.
func (s ItineraryState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Trip is a decoded trip document.
type Trip struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Destinations      []string  `json:"allDestinations"`
	DepartureLocation string    `json:"departureLocation,omitempty"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	Status            Status    `json:"status"`
	// RawStatus is the stored status string, kept for operators.
	RawStatus   string      `json:"rawStatus,omitempty"`
	Preferences Preferences `json:"preferences"`

	Itinerary      *itinerary.DetailedItinerary `json:"itinerary,omitempty"`
	ItineraryState ItineraryState               `json:"itineraryState"`
	// ItineraryErr is set when ItineraryState is ItineraryUnavailable.
	ItineraryErr error `json:"-"`
}

// Destination returns the first destination.
func (t Trip) Destination() string {
	if len(t.Destinations) == 0 {
		return ""
	}

	return t.Destinations[0]
}

// Preferences are the traveller's free-text answers.
type Preferences struct {
	Budget          string   `json:"budget,omitempty"`
	TravelStyle     string   `json:"travelStyle,omitempty"`
	GroupSize       string   `json:"groupSize,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	SpecialRequests string   `json:"specialRequests,omitempty"`
}
