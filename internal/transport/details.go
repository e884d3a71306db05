package transport

import (
	"time"

	"trip-decoder/internal/cost"
)

// Details is one of FlightDetails, TrainDetails, BusDetails, FerryDetails
// or CarDetails.
type Details interface {
	Mode() Type
	Summary() Info
	isDetails()
}

// Info is carried by every variant.
type Info struct {
	Duration string            `json:"duration,omitempty"`
	Operator string            `json:"operator,omitempty"`
	Cost     cost.FlexibleCost `json:"cost"`
	Booking  Booking           `json:"booking"`
	Notes    string            `json:"notes,omitempty"`
}

// Summary returns the fields shared by all variants.
func (i Info) Summary() Info {
	return i
}

// Booking is the booking state of a leg, reservation or stay.
type Booking struct {
	Booked             bool      `json:"booked"`
	ConfirmationNumber string    `json:"confirmationNumber,omitempty"`
	BookedDate         time.Time `json:"bookedDate,omitzero"`
	BookingURL         string    `json:"bookingUrl,omitempty"`
}

// Endpoint is one end of a route: an airport, station, stop or port.
type Endpoint struct {
	Code     string    `json:"code,omitempty"`
	Name     string    `json:"name,omitempty"`
	City     string    `json:"city,omitempty"`
	Terminal string    `json:"terminal,omitempty"`
	Time     time.Time `json:"time,omitzero"`
	// LocalTime holds a time of day that is not a full timestamp, e.g. "08:15".
	LocalTime string `json:"localTime,omitempty"`
}

// Label returns the code, or the name when there is no code.
func (e Endpoint) Label() string {
	if e.Code != "" {
		return e.Code
	}

	return e.Name
}

// Route is the departure and arrival of a segment variant.
type Route struct {
	Departure Endpoint `json:"departure"`
	Arrival   Endpoint `json:"arrival"`
}

// FlightDetails is a flight leg.
type FlightDetails struct {
	Info
	Route
	FlightNumber string   `json:"flightNumber,omitempty"`
	CabinClass   string   `json:"cabinClass,omitempty"`
	Aircraft     string   `json:"aircraft,omitempty"`
	Stops        int      `json:"stops"`
	Layovers     []string `json:"layovers,omitempty"`
}

// TrainDetails is a rail segment.
type TrainDetails struct {
	Info
	Route
	TrainNumber string `json:"trainNumber,omitempty"`
	Class       string `json:"class,omitempty"`
}

// BusDetails is a bus or coach segment.
type BusDetails struct {
	Info
	Route
	RouteNumber string `json:"routeNumber,omitempty"`
}

// FerryDetails is a ferry crossing.
type FerryDetails struct {
	Info
	Route
	Vessel    string `json:"vessel,omitempty"`
	CabinType string `json:"cabinType,omitempty"`
}

// CarDetails is a car rental. It has no route.
type CarDetails struct {
	Info
	CarType         string    `json:"carType,omitempty"`
	PickupLocation  string    `json:"pickupLocation"`
	DropoffLocation string    `json:"dropoffLocation"`
	PickupTime      time.Time `json:"pickupTime,omitzero"`
	DropoffTime     time.Time `json:"dropoffTime,omitzero"`
}

func (FlightDetails) Mode() Type { return Flight }
func (TrainDetails) Mode() Type  { return Train }
func (BusDetails) Mode() Type    { return Bus }
func (FerryDetails) Mode() Type  { return Ferry }
func (CarDetails) Mode() Type    { return Car }

func (FlightDetails) isDetails() {}
func (TrainDetails) isDetails()  {}
func (BusDetails) isDetails()    {}
func (FerryDetails) isDetails()  {}
func (CarDetails) isDetails()    {}

// RouteOf returns the route of a segment variant.
func RouteOf(d Details) (Route, bool) {
	switch v := d.(type) {
	case FlightDetails:
		return v.Route, true
	case TrainDetails:
		return v.Route, true
	case BusDetails:
		return v.Route, true
	case FerryDetails:
		return v.Route, true
	default:
		return Route{}, false
	}
}
