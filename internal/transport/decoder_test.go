package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-decoder/internal/cost"
	"trip-decoder/internal/document"
)

func newTestDecoder() *Decoder {
	return NewDecoder(cost.NewDecoder(cost.FixedRate(0.01), "USD", nil), nil)
}

func station(code string) map[string]any {
	return map[string]any{"code": code, "time": "2024-06-01T08:00:00Z"}
}

func TestDecode_Variants(t *testing.T) {
	d := newTestDecoder()

	tests := []struct {
		name string
		doc  document.Document
		want Type
	}{
		{
			name: "flight",
			doc: document.Document{
				"transportType": "flight",
				"airline":       "ANA",
				"flightNumber":  "NH9",
				"departure":     map[string]any{"airportCode": "BOS"},
				"arrival":       map[string]any{"airportCode": "NRT"},
			},
			want: Flight,
		},
		{
			name: "train via type key",
			doc: document.Document{
				"type":      "Train",
				"departure": station("PAR"),
				"arrival":   station("LYS"),
			},
			want: Train,
		},
		{
			name: "bus alias",
			doc:  document.Document{"type": "coach", "departure": station("A"), "arrival": station("B")},
			want: Bus,
		},
		{
			name: "ferry",
			doc:  document.Document{"type": "ferry", "departure": station("A"), "arrival": station("B"), "vessel": "Nordlys"},
			want: Ferry,
		},
		{
			name: "car rental",
			doc:  document.Document{"transportType": "car_rental", "pickupLocation": "LAX", "rentalCompany": "Hertz"},
			want: Car,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Decode(tt.doc, document.Path("transport"), Unspecified)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Mode())
		})
	}
}

func TestDecode_FlightFields(t *testing.T) {
	d := newTestDecoder()

	got, err := d.Decode(document.Document{
		"airline":      "ANA",
		"flightNumber": 9,
		"duration":     "13h",
		"stops":        1,
		"layovers":     []any{"HND"},
		"cost":         map[string]any{"paymentType": "points", "pointsAmount": 50000},
		"departure":    map[string]any{"airportCode": "BOS", "airportName": "Logan", "time": "2024-06-01T08:00:00Z", "terminal": 2},
		"arrival":      map[string]any{"airportCode": "NRT", "time": "15:30"},
	}, document.Root, Unspecified)
	require.NoError(t, err)

	f, ok := got.(FlightDetails)
	require.True(t, ok)
	assert.Equal(t, "ANA", f.Operator)
	assert.Equal(t, "9", f.FlightNumber)
	assert.Equal(t, "13h", f.Duration)
	assert.Equal(t, 1, f.Stops)
	assert.Equal(t, []string{"HND"}, f.Layovers)
	assert.Equal(t, cost.Points, f.Cost.PaymentType)
	assert.InDelta(t, 500.0, f.Cost.TotalCashValue, 1e-9)
	assert.Equal(t, "BOS", f.Departure.Label())
	assert.Equal(t, "2", f.Departure.Terminal)
	assert.True(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC).Equal(f.Departure.Time))
	assert.True(t, f.Arrival.Time.IsZero())
	assert.Equal(t, "15:30", f.Arrival.LocalTime)

	r, ok := RouteOf(got)
	require.True(t, ok)
	assert.Equal(t, "NRT", r.Arrival.Code)
}

func TestDecode_DefaultsToDeclaredThenFlight(t *testing.T) {
	d := newTestDecoder()
	doc := document.Document{"departure": station("A"), "arrival": station("B")}

	got, err := d.Decode(doc, document.Root, Train)
	require.NoError(t, err)
	assert.Equal(t, Train, got.Mode())

	got, err = d.Decode(doc, document.Root, Unspecified)
	require.NoError(t, err)
	assert.Equal(t, Flight, got.Mode())

	// An explicit discriminator wins over the declared type.
	doc["type"] = "bus"
	got, err = d.Decode(doc, document.Root, Train)
	require.NoError(t, err)
	assert.Equal(t, Bus, got.Mode())
}

func TestDecode_UnknownVariant(t *testing.T) {
	d := newTestDecoder()

	_, err := d.Decode(document.Document{
		"transportType": "hyperloop",
		"departure":     station("LA"),
		"arrival":       station("SF"),
	}, document.Path("options[0]"), Flight)
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrUnknownVariant)

	de, ok := document.AsDecodeError(err)
	require.True(t, ok)
	assert.Equal(t, "hyperloop", de.Value)
	assert.Equal(t, document.Path("options[0].transportType"), de.Path)
}

func TestDecode_DiscriminatorMismatch(t *testing.T) {
	d := newTestDecoder()

	carPayload := map[string]any{"pickupLocation": "LAX", "dropoffLocation": "SFO", "rentalCompany": "Hertz"}

	tests := []struct {
		name string
		doc  document.Document
	}{
		{"inline car payload under train", document.Document{
			"transportType": "train", "pickupLocation": "LAX", "dropoffLocation": "SFO",
		}},
		{"wrapped car payload under train", document.Document{"type": "train", "details": carPayload}},
		{"route payload under car", document.Document{
			"type": "car", "pickupLocation": "LAX", "departure": station("A"),
		}},
		{"inner discriminator disagrees", document.Document{
			"type": "train", "details": map[string]any{"type": "bus", "departure": station("A"), "arrival": station("B")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Decode(tt.doc, document.Root, Unspecified)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, document.ErrMalformedStructure)
		})
	}
}

func TestDecode_Wrapper(t *testing.T) {
	d := newTestDecoder()

	got, err := d.Decode(document.Document{
		"type":     "train",
		"isBooked": true,
		"details": map[string]any{
			"departure":          station("PAR"),
			"arrival":            station("LYS"),
			"trainNumber":        "TGV 6601",
			"confirmationNumber": "INNER",
		},
	}, document.Path("leg"), Unspecified)
	require.NoError(t, err)

	train, ok := got.(TrainDetails)
	require.True(t, ok)
	assert.Equal(t, "TGV 6601", train.TrainNumber)
	assert.Equal(t, "PAR", train.Departure.Code)
	assert.True(t, train.Booking.Booked, "booking read from the wrapper level")
	assert.Empty(t, train.Booking.ConfirmationNumber)

	// The inner discriminator is used when the wrapper has none.
	got, err = d.Decode(document.Document{
		"details": map[string]any{"type": "ferry", "departure": station("A"), "arrival": station("B")},
	}, document.Root, Unspecified)
	require.NoError(t, err)
	assert.Equal(t, Ferry, got.Mode())
}

func TestDecode_WrapperStructuralChecks(t *testing.T) {
	d := newTestDecoder()

	_, err := d.Decode(document.Document{"type": "train", "details": "see attachment"}, document.Root, Unspecified)
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrMalformedStructure)

	_, err = d.Decode(document.Document{
		"type":      "train",
		"departure": station("A"),
		"details":   map[string]any{"departure": station("A"), "arrival": station("B")},
	}, document.Root, Unspecified)
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrMalformedStructure)
}

func TestDecode_RequiredFields(t *testing.T) {
	d := newTestDecoder()

	_, err := d.Decode(document.Document{
		"departure": map[string]any{"city": "Boston"},
		"arrival":   station("NRT"),
	}, document.Path("trips[3].itinerary.flights[0]"), Flight)
	require.Error(t, err)
	assert.Equal(t, "missing field trips[3].itinerary.flights[0].departure.airportCode", err.Error())

	_, err = d.Decode(document.Document{"departure": station("A")}, document.Root, Bus)
	assert.ErrorIs(t, err, document.ErrMissingField)

	_, err = d.Decode(document.Document{"type": "car", "carType": "SUV"}, document.Root, Unspecified)
	assert.ErrorIs(t, err, document.ErrMissingField)

	_, err = d.Decode(document.Document{"type": 3}, document.Root, Unspecified)
	assert.ErrorIs(t, err, document.ErrTypeMismatch)
}

func TestDecode_CarDefaults(t *testing.T) {
	d := newTestDecoder()

	got, err := d.Decode(document.Document{
		"type":           "car",
		"pickupLocation": "LAX",
		"company":        "Avis",
		"pickupTime":     "2024-06-01T10:00:00Z",
	}, document.Root, Unspecified)
	require.NoError(t, err)

	car, ok := got.(CarDetails)
	require.True(t, ok)
	assert.Equal(t, "LAX", car.DropoffLocation, "drop-off defaults to pickup")
	assert.Equal(t, "Avis", car.Operator)
	assert.False(t, car.PickupTime.IsZero())

	_, ok = RouteOf(car)
	assert.False(t, ok)
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{
		"flight": Flight, "FLIGHT": Flight, "rail": Train, "Car-Rental": Car, " boat ": Ferry,
	} {
		got, ok := ParseType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseType("hyperloop")
	assert.False(t, ok)
}
