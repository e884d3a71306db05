package transport

import (
	"log/slog"
	"time"

	"trip-decoder/internal/common"
	"trip-decoder/internal/cost"
	"trip-decoder/internal/document"
	"trip-decoder/internal/logger"
)

// Discriminator keys, in lookup order.
var discriminatorKeys = []string{"transportType", "type"}

const detailsKey = "details"

// Keys that may sit beside a details wrapper without being payload.
var wrapperKeys = keySet(append([]string{
	"transportType", "type", detailsKey, "id", "estimatedCost", "recommended", "isRecommended", "notes",
}, bookingKeys...))

// Payload keys that only segment variants use.
var routeKeys = []string{"departure", "arrival"}

// Payload keys that only car rentals use.
var carKeys = []string{"pickupLocation", "dropoffLocation", "pickupTime", "dropoffTime", "rentalCompany", "carType"}

// Decoder decodes transport documents. It is safe for concurrent use.
type Decoder struct {
	costs *cost.Decoder
	log   *slog.Logger
}

// NewDecoder returns a Decoder using costs for embedded costs.
func NewDecoder(costs *cost.Decoder, log *slog.Logger) *Decoder {
	if costs == nil {
		costs = cost.NewDecoder(nil, "", log)
	}

	return &Decoder{costs: costs, log: logger.OrNop(log)}
}

// Decode decodes the transport document at path. The mode comes from the
// document's discriminator, then declared, then defaults to Flight.
func (d *Decoder) Decode(doc document.Document, path document.Path, declared Type) (Details, error) {
	outer := document.At(doc, path)

	mode, explicit, err := discriminator(outer)
	if err != nil {
		return nil, err
	}

	payload, err := unwrap(outer, mode, explicit)
	if err != nil {
		return nil, err
	}

	if !explicit {
		if inner, innerExplicit, err := discriminator(payload); err != nil {
			return nil, err
		} else if innerExplicit {
			mode, explicit = inner, true
		}
	}

	if !explicit {
		mode = declared
		if mode == Unspecified {
			mode = Flight
		}
	}

	if err := checkShape(payload, mode); err != nil {
		return nil, err
	}

	info := d.info(payload)
	info.Booking = bookingOf(outer, payload)

	switch mode {
	case Flight:
		return d.flight(payload, info)
	case Train:
		return d.train(payload, info)
	case Bus:
		return d.bus(payload, info)
	case Ferry:
		return d.ferry(payload, info)
	case Car:
		return d.car(payload, info)
	default:
		return nil, document.Unknown(path, mode.String())
	}
}

// discriminator reads the mode of a document level. explicit is false when
// no discriminator is present.
func discriminator(a document.Accessor) (mode Type, explicit bool, err error) {
	key, ok := a.First(discriminatorKeys...)
	if !ok {
		return Unspecified, false, nil
	}

	raw, _ := a.Raw(key)

	s, ok := raw.(string)
	if !ok {
		return Unspecified, false, document.Mismatch(a.Sub(key), document.KindString, raw)
	}

	mode, ok = ParseType(s)
	if !ok {
		return Unspecified, false, document.Unknown(a.Sub(key), s)
	}

	return mode, true, nil
}

// unwrap strips a {type, details: {...}} wrapper. The check is structural:
// a details key decides, never the absence of payload fields.
func unwrap(outer document.Accessor, mode Type, explicit bool) (document.Accessor, error) {
	raw, ok := outer.Raw(detailsKey)
	if !ok {
		return outer, nil
	}

	inner, ok := document.AsDocument(raw)
	if !ok {
		return document.Accessor{}, document.Malformed(outer.Sub(detailsKey),
			"transport details must be a document, got %s", document.KindOf(raw))
	}

	for key := range outer.Document() {
		if !wrapperKeys[key] && outer.Has(key) {
			return document.Accessor{}, document.Malformed(outer.Path(),
				"transport payload is both wrapped in %s and inline (field %q)", detailsKey, key)
		}
	}

	payload := document.At(inner, outer.Sub(detailsKey))

	innerMode, innerExplicit, err := discriminator(payload)
	if err != nil {
		return document.Accessor{}, err
	}

	if explicit && innerExplicit && innerMode != mode {
		return document.Accessor{}, document.Malformed(outer.Path(),
			"discriminator %s disagrees with wrapped discriminator %s", mode, innerMode)
	}

	return payload, nil
}

// checkShape rejects payloads whose fields belong to the other family of
// variants, so a car rental is never read as a defaulted train.
func checkShape(payload document.Accessor, mode Type) error {
	if mode.HasRoute() {
		if key, ok := payload.First(carKeys...); ok {
			return document.Malformed(payload.Path(),
				"%s payload carries car rental field %q", mode, key)
		}

		return nil
	}

	if key, ok := payload.First(routeKeys...); ok {
		return document.Malformed(payload.Path(), "%s payload carries route field %q", mode, key)
	}

	return nil
}

func (d *Decoder) info(a document.Accessor) Info {
	costKey, _ := a.First("cost", "price")
	raw, _ := a.Raw(costKey)

	return Info{
		Duration: a.Text("duration", ""),
		Cost:     d.costs.Flexible(raw, a.Sub(costKey)),
		Notes:    a.String("notes", ""),
	}
}

func (d *Decoder) flight(a document.Accessor, info Info) (Details, error) {
	r, err := route(a)
	if err != nil {
		return nil, err
	}

	info.Operator = common.FirstNonBlank(a.String("airline", ""), a.String("operator", ""))

	return FlightDetails{
		Info:         info,
		Route:        r,
		FlightNumber: a.Text("flightNumber", ""),
		CabinClass:   common.FirstNonBlank(a.String("cabinClass", ""), a.String("class", "")),
		Aircraft:     a.String("aircraft", ""),
		Stops:        a.Int("stops", 0),
		Layovers:     a.Strings("layovers"),
	}, nil
}

func (d *Decoder) train(a document.Accessor, info Info) (Details, error) {
	r, err := route(a)
	if err != nil {
		return nil, err
	}

	info.Operator = common.FirstNonBlank(a.String("operator", ""), a.String("trainOperator", ""))

	return TrainDetails{
		Info:        info,
		Route:       r,
		TrainNumber: a.Text("trainNumber", ""),
		Class:       a.String("class", ""),
	}, nil
}

func (d *Decoder) bus(a document.Accessor, info Info) (Details, error) {
	r, err := route(a)
	if err != nil {
		return nil, err
	}

	info.Operator = common.FirstNonBlank(a.String("operator", ""), a.String("busCompany", ""))

	return BusDetails{
		Info:        info,
		Route:       r,
		RouteNumber: a.Text("routeNumber", ""),
	}, nil
}

func (d *Decoder) ferry(a document.Accessor, info Info) (Details, error) {
	r, err := route(a)
	if err != nil {
		return nil, err
	}

	info.Operator = common.FirstNonBlank(a.String("operator", ""), a.String("ferryCompany", ""))

	return FerryDetails{
		Info:      info,
		Route:     r,
		Vessel:    a.String("vessel", ""),
		CabinType: a.String("cabinType", ""),
	}, nil
}

func (d *Decoder) car(a document.Accessor, info Info) (Details, error) {
	pickup, err := a.RequireString("pickupLocation")
	if err != nil {
		return nil, err
	}

	info.Operator = common.FirstNonBlank(a.String("rentalCompany", ""), a.String("company", ""), a.String("operator", ""))

	return CarDetails{
		Info:            info,
		CarType:         a.String("carType", ""),
		PickupLocation:  pickup,
		DropoffLocation: a.String("dropoffLocation", pickup),
		PickupTime:      a.Time("pickupTime"),
		DropoffTime:     a.Time("dropoffTime"),
	}, nil
}

// route decodes the departure and arrival shared by all segment variants.
func route(a document.Accessor) (Route, error) {
	dep, err := endpoint(a, "departure")
	if err != nil {
		return Route{}, err
	}

	arr, err := endpoint(a, "arrival")
	if err != nil {
		return Route{}, err
	}

	return Route{Departure: dep, Arrival: arr}, nil
}

func endpoint(parent document.Accessor, key string) (Endpoint, error) {
	a, err := parent.RequireDoc(key)
	if err != nil {
		return Endpoint{}, err
	}

	e := Endpoint{
		Code:     common.FirstNonBlank(a.String("airportCode", ""), a.String("code", ""), a.String("stationCode", "")),
		Name:     common.FirstNonBlank(a.String("airportName", ""), a.String("name", ""), a.String("stationName", "")),
		City:     a.String("city", ""),
		Terminal: a.Text("terminal", ""),
	}

	if e.Code == "" && e.Name == "" {
		return Endpoint{}, document.Missing(a.Sub("airportCode"))
	}

	if timeKey, ok := a.First("time", "dateTime", "date"); ok {
		if t, ok := a.LookupTime(timeKey); ok {
			e.Time = t
		} else {
			e.LocalTime = a.Text(timeKey, "")
		}
	}

	return e, nil
}

// DecodeBooking reads booking metadata from one document level.
func DecodeBooking(a document.Accessor) Booking {
	return Booking{
		Booked:             a.Bool("isBooked", a.Bool("booked", false)),
		ConfirmationNumber: common.FirstNonBlank(a.Text("confirmationNumber", ""), a.Text("bookingReference", "")),
		BookedDate:         timeOf(a, "bookedDate", "bookingDate"),
		BookingURL:         a.String("bookingUrl", ""),
	}
}

// bookingOf prefers the outer level: a booking reference covers the whole
// leg, including any segments wrapped beneath it.
func bookingOf(outer, payload document.Accessor) Booking {
	if hasBooking(outer) {
		return DecodeBooking(outer)
	}

	return DecodeBooking(payload)
}

var bookingKeys = []string{
	"isBooked", "booked", "confirmationNumber", "bookingReference", "bookedDate", "bookingDate", "bookingUrl",
}

func hasBooking(a document.Accessor) bool {
	_, ok := a.First(bookingKeys...)
	return ok
}

func timeOf(a document.Accessor, keys ...string) time.Time {
	if key, ok := a.First(keys...); ok {
		return a.Time(key)
	}

	return time.Time{}
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}

	return set
}
