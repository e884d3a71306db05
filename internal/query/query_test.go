package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-decoder/internal/cost"
	"trip-decoder/internal/itinerary"
	"trip-decoder/internal/transport"
	"trip-decoder/internal/trip"
)

func sampleTrip() trip.Trip {
	return trip.Trip{
		ID:           "t1",
		UserID:       "u1",
		Destinations: []string{"Paris", "Rome"},
		StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:       trip.Completed,
		Itinerary: &itinerary.DetailedItinerary{
			ID: "it1",
			Flights: itinerary.FlightItinerary{
				Outbound:  &transport.FlightDetails{},
				Return:    &transport.FlightDetails{},
				TotalCost: cost.FlexibleCost{TotalCashValue: 420},
			},
		},
		ItineraryState: trip.ItineraryAvailable,
	}
}

func TestCompile(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		_, err := Compile("  ")
		assert.ErrorIs(t, err, ErrEmptyExpression)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Compile("trip.status ==")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compile error")
	})

	t.Run("unknown variable", func(t *testing.T) {
		_, err := Compile("user.id == 'x'")
		require.Error(t, err)
	})

	t.Run("must compile panics", func(t *testing.T) {
		assert.Panics(t, func() { MustCompile("") })
	})
}

func TestFilter_Match(t *testing.T) {
	tr := sampleTrip()

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"status", `trip.status == "completed"`, true},
		{"destination membership", `"Rome" in trip.destinations`, true},
		{"itinerary", `trip.hasItinerary && trip.itineraryState == "available"`, true},
		{"flight total", `trip.flightCashTotal < 500.0`, true},
		{"legs", `trip.legs == 2`, true},
		{"dates", `trip.startDate >= timestamp("2024-06-01T00:00:00Z") && trip.endDate < timestamp("2024-07-01T00:00:00Z")`, true},
		{"no match", `trip.userId == "u2"`, false},
		{"non boolean", `trip.id`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expr)
			require.NoError(t, err)

			got, err := f.Match(tr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_MatchError(t *testing.T) {
	f := MustCompile(`trip.missing == 1`)

	ok, err := f.Match(sampleTrip())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "t1")
}

func TestFilter_Select(t *testing.T) {
	noItinerary := trip.Trip{ID: "t2", Status: trip.Pending}

	f := MustCompile(`!trip.hasItinerary`)
	got, err := f.Select([]trip.Trip{sampleTrip(), noItinerary})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, `!trip.hasItinerary`, f.String())
}

func TestFacts(t *testing.T) {
	facts := Facts(trip.Trip{ID: "t3"})

	assert.Equal(t, []string{}, facts["destinations"])
	assert.Equal(t, false, facts["hasItinerary"])
	assert.Equal(t, "absent", facts["itineraryState"])
	assert.Equal(t, 0.0, facts["flightCashTotal"])
	assert.Equal(t, int64(0), facts["legs"])
	assert.Equal(t, "pending", facts["status"])
}
