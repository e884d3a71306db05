package cost

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-decoder/internal/document"
)

type programRates map[string]float64

func (r programRates) CashPerPoint(program string) float64 {
	return r[program]
}

func newTestDecoder() *Decoder {
	return NewDecoder(programRates{"": 0.01, "ur": 0.015}, "", nil)
}

func TestFlexible_DialectEquivalence(t *testing.T) {
	d := newTestDecoder()

	current := d.Flexible(map[string]any{"paymentType": "cash", "cashAmount": 100}, document.Root)
	legacy := d.Flexible(map[string]any{"cash": 100}, document.Root)
	bare := d.Flexible(100, document.Root)

	for _, c := range []FlexibleCost{current, legacy, bare} {
		assert.Equal(t, Cash, c.PaymentType)
		assert.InDelta(t, 100.0, c.CashAmount, 1e-9)
		assert.InDelta(t, 100.0, c.TotalCashValue, 1e-9)
	}
}

func TestFlexible_Tagged(t *testing.T) {
	d := newTestDecoder()

	tests := []struct {
		name string
		in   map[string]any
		want FlexibleCost
	}{
		{
			name: "points valued by program",
			in:   map[string]any{"paymentType": "points", "pointsAmount": 20000, "pointsProgram": "ur"},
			want: FlexibleCost{PaymentType: Points, PointsAmount: intPtr(20000), PointsProgram: "ur", TotalCashValue: 300},
		},
		{
			name: "hybrid with explicit total",
			in: map[string]any{
				"paymentType": "Hybrid", "cashAmount": 50.5, "pointsAmount": json.Number("1000"),
				"totalCashValue": 70,
			},
			want: FlexibleCost{PaymentType: Hybrid, CashAmount: 50.5, PointsAmount: intPtr(1000), TotalCashValue: 70},
		},
		{
			name: "total defaults to cash",
			in:   map[string]any{"paymentType": "cash", "cashAmount": 80, "pointsAmount": 5},
			want: FlexibleCost{PaymentType: Cash, CashAmount: 80, TotalCashValue: 80},
		},
		{
			name: "unknown tag inferred as hybrid",
			in:   map[string]any{"paymentType": "miles+money", "cashAmount": 10, "pointsAmount": 100},
			want: FlexibleCost{PaymentType: Hybrid, CashAmount: 10, PointsAmount: intPtr(100), TotalCashValue: 11},
		},
		{
			name: "unknown tag inferred as cash",
			in:   map[string]any{"paymentType": "", "cashAmount": 10},
			want: FlexibleCost{PaymentType: Cash, CashAmount: 10, TotalCashValue: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Flexible(tt.in, document.Path("cost"))
			assert.Equal(t, tt.want.PaymentType, got.PaymentType)
			assert.InDelta(t, tt.want.CashAmount, got.CashAmount, 1e-9)
			assert.Equal(t, tt.want.PointsAmount, got.PointsAmount)
			assert.Equal(t, tt.want.PointsProgram, got.PointsProgram)
			assert.InDelta(t, tt.want.TotalCashValue, got.TotalCashValue, 1e-9)
		})
	}
}

func TestFlexible_NeverFails(t *testing.T) {
	d := newTestDecoder()

	for _, in := range []any{nil, "free", []any{1}, map[string]any{}, map[string]any{"cash": "ten"}} {
		assert.Equal(t, FlexibleCost{}, d.Flexible(in, document.Root))
	}
}

func TestTransport(t *testing.T) {
	d := newTestDecoder()

	legacy := d.Transport(map[string]any{"cash": 45, "points": 3000, "currency": "EUR"}, document.Root)
	assert.InDelta(t, 45.0, legacy.Cash, 1e-9)
	require.NotNil(t, legacy.Points)
	assert.Equal(t, 3000, *legacy.Points)
	assert.Equal(t, "EUR", legacy.Currency)

	tagged := d.Transport(map[string]any{"paymentType": "cash", "cashAmount": 45}, document.Root)
	assert.InDelta(t, 45.0, tagged.Cash, 1e-9)
	assert.Nil(t, tagged.Points)
	assert.Equal(t, DefaultCurrency, tagged.Currency)

	assert.Equal(t, TransportCost{Cash: 12, Currency: "USD"}, d.Transport(12, document.Root))
	assert.Equal(t, TransportCost{Currency: "USD"}, d.Transport(nil, document.Root))

	gbp := NewDecoder(nil, "GBP", nil)
	assert.Equal(t, "GBP", gbp.Transport(map[string]any{}, document.Root).Currency)
}

func TestBreakdown(t *testing.T) {
	d := newTestDecoder()

	b := d.Breakdown(map[string]any{
		"flights":       map[string]any{"paymentType": "cash", "cashAmount": 600},
		"accommodation": 400,
		"food":          map[string]any{"cash": 150},
		"total":         999,
		"currency":      "JPY",
	}, document.Path("itinerary.totalCost"))

	assert.InDelta(t, 600.0, b.Flights.TotalCashValue, 1e-9)
	assert.InDelta(t, 400.0, b.Accommodation.CashAmount, 1e-9)
	assert.InDelta(t, 150.0, b.Food.CashAmount, 1e-9)
	assert.True(t, b.Activities.IsZero())
	assert.InDelta(t, 999.0, b.Total.TotalCashValue, 1e-9, "total is read as stored")
	assert.Equal(t, "JPY", b.Currency)

	empty := d.Breakdown(nil, document.Root)
	assert.True(t, empty.Total.IsZero())
	assert.Equal(t, DefaultCurrency, empty.Currency)
}

func TestSum(t *testing.T) {
	cash := func(v float64) FlexibleCost {
		return FlexibleCost{PaymentType: Cash, CashAmount: v, TotalCashValue: v}
	}

	total := Sum(cash(100), cash(250), cash(0))
	assert.Equal(t, Cash, total.PaymentType)
	assert.InDelta(t, 350.0, total.CashAmount, 1e-9)
	assert.InDelta(t, 350.0, total.TotalCashValue, 1e-9)
	assert.Nil(t, total.PointsAmount)

	pts := FlexibleCost{PaymentType: Points, PointsAmount: intPtr(1000), PointsProgram: "ur", TotalCashValue: 15}
	mixed := Sum(cash(20), pts, pts)
	assert.Equal(t, Hybrid, mixed.PaymentType)
	assert.Equal(t, 2000, mixed.Points())
	assert.Equal(t, "ur", mixed.PointsProgram)
	assert.InDelta(t, 50.0, mixed.TotalCashValue, 1e-9)

	other := FlexibleCost{PaymentType: Points, PointsAmount: intPtr(1), PointsProgram: "amex"}
	assert.Empty(t, Sum(pts, other).PointsProgram)

	assert.Equal(t, FlexibleCost{}, Sum())
}

func TestParsePaymentType(t *testing.T) {
	pt, ok := ParsePaymentType(" POINTS ")
	assert.True(t, ok)
	assert.Equal(t, Points, pt)

	_, ok = ParsePaymentType("barter")
	assert.False(t, ok)

	assert.Equal(t, "hybrid", Hybrid.String())
	assert.Equal(t, "unknown", PaymentType(7).String())
}
