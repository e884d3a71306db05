package itinerary

import (
	"time"

	"trip-decoder/internal/cost"
	"trip-decoder/internal/transport"
)

// DetailedItinerary is the full plan of a trip.
type DetailedItinerary struct {
	ID                  string                 `json:"id"`
	Flights             FlightItinerary        `json:"flights"`
	DailyPlans          []DailyPlan            `json:"dailyPlans"`
	Accommodations      []AccommodationDetails `json:"accommodations"`
	TotalCost           cost.CostBreakdown     `json:"totalCost"`
	BookingInstructions BookingInstructions    `json:"bookingInstructions"`
	EmergencyInfo       EmergencyInfo          `json:"emergencyInfo"`
	MajorTransportation transport.Plan         `json:"majorTransportation"`
}

// FlightItinerary holds flight legs by role. TotalCost is the sum of the
// leg costs and is always recomputed.
type FlightItinerary struct {
	Outbound   *transport.FlightDetails  `json:"outbound,omitempty"`
	Return     *transport.FlightDetails  `json:"return,omitempty"`
	Additional []transport.FlightDetails `json:"additional"`
	TotalCost  cost.FlexibleCost         `json:"totalCost"`
}

// Legs returns the legs in positional order.
func (f FlightItinerary) Legs() []transport.FlightDetails {
	var legs []transport.FlightDetails

	if f.Outbound != nil {
		legs = append(legs, *f.Outbound)
	}

	if f.Return != nil {
		legs = append(legs, *f.Return)
	}

	return append(legs, f.Additional...)
}

// DailyPlan is one day of the itinerary.
type DailyPlan struct {
	Day        int        `json:"day"`
	Date       time.Time  `json:"date,omitzero"`
	Title      string     `json:"title,omitempty"`
	Location   string     `json:"location,omitempty"`
	Activities []Activity `json:"activities"`
	Meals      []Meal     `json:"meals"`
	Notes      string     `json:"notes,omitempty"`
}

// Activity is a scheduled item of a day.
type Activity struct {
	Name        string            `json:"name"`
	Time        string            `json:"time,omitempty"`
	Duration    string            `json:"duration,omitempty"`
	Location    string            `json:"location,omitempty"`
	Description string            `json:"description,omitempty"`
	Cost        cost.FlexibleCost `json:"cost"`
	Booking     transport.Booking `json:"booking"`
}

// Meal is a planned meal of a day.
type Meal struct {
	Type       string            `json:"type,omitempty"`
	Restaurant string            `json:"restaurant,omitempty"`
	Cuisine    string            `json:"cuisine,omitempty"`
	Cost       cost.FlexibleCost `json:"cost"`
}

// AccommodationDetails is a stay. Review and Rental are independent
// provider extensions; either, both or neither may be set.
type AccommodationDetails struct {
	Name      string            `json:"name"`
	Type      string            `json:"type,omitempty"`
	Location  string            `json:"location,omitempty"`
	CheckIn   time.Time         `json:"checkIn,omitzero"`
	CheckOut  time.Time         `json:"checkOut,omitzero"`
	Nights    int               `json:"nights"`
	Cost      cost.FlexibleCost `json:"cost"`
	Amenities []string          `json:"amenities"`
	Booking   transport.Booking `json:"booking"`
	Review    *Review           `json:"review,omitempty"`
	Rental    *Rental           `json:"rental,omitempty"`
}

// Review is hotel search metadata.
type Review struct {
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Source      string   `json:"source,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Rental is short-term rental import metadata.
type Rental struct {
	Host         string   `json:"host,omitempty"`
	ListingURL   string   `json:"listingUrl,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms"`
	MaxGuests    int      `json:"maxGuests"`
	HouseRules   []string `json:"houseRules,omitempty"`
}

// BookingInstructions tells the traveller how to book.
type BookingInstructions struct {
	Overview string            `json:"overview"`
	Steps    []string          `json:"steps"`
	Tips     []string          `json:"tips"`
	Links    map[string]string `json:"links"`
}

// EmergencyInfo collects emergency contacts for the destinations.
type EmergencyInfo struct {
	EmergencyNumber string            `json:"emergencyNumber"`
	Embassy         string            `json:"embassy"`
	Hospitals       []string          `json:"hospitals"`
	Contacts        map[string]string `json:"contacts"`
	Notes           string            `json:"notes"`
}
