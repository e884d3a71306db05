package cost

import (
	"strings"

	"trip-decoder/internal/common"
)

// PaymentType is how a cost is paid.
type PaymentType int

const (
	Cash PaymentType = iota
	Points
	Hybrid
)

// String returns the document spelling of the payment type.
func (p PaymentType) String() string {
	switch p {
	case Cash:
		return "cash"
	case Points:
		return "points"
	case Hybrid:
		return "hybrid"
	default:
		return common.UnknownStr
	}
}

// MarshalText encodes the payment type by name.
func (p PaymentType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParsePaymentType parses a paymentType tag, ignoring case and surrounding space.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return Cash, true
	case "points":
		return Points, true
	case "hybrid":
		return Hybrid, true
	default:
		return Cash, false
	}
}

// FlexibleCost is a cash, points or hybrid payment.
// TotalCashValue is always set and is what costs are compared by.
type FlexibleCost struct {
	PaymentType    PaymentType `json:"paymentType"`
	CashAmount     float64     `json:"cashAmount"`
	PointsAmount   *int        `json:"pointsAmount,omitempty"`
	PointsProgram  string      `json:"pointsProgram,omitempty"`
	TotalCashValue float64     `json:"totalCashValue"`
}

// IsZero reports whether the cost carries no amount.
func (c FlexibleCost) IsZero() bool {
	return c.CashAmount == 0 && c.Points() == 0 && c.TotalCashValue == 0
}

// Points returns the points amount, zero when there is none.
func (c FlexibleCost) Points() int {
	if c.PointsAmount == nil {
		return 0
	}

	return *c.PointsAmount
}

// TransportCost is the legacy cost shape of transport segments.
// Currency is always set.
type TransportCost struct {
	Cash     float64 `json:"cash"`
	Points   *int    `json:"points,omitempty"`
	Currency string  `json:"currency"`
}

// CostBreakdown is an itinerary's cost per category.
// It is read as stored; Total is not recomputed from the categories.
type CostBreakdown struct {
	Flights        FlexibleCost `json:"flights"`
	Accommodation  FlexibleCost `json:"accommodation"`
	Activities     FlexibleCost `json:"activities"`
	Transportation FlexibleCost `json:"transportation"`
	Food           FlexibleCost `json:"food"`
	Other          FlexibleCost `json:"other"`
	Total          FlexibleCost `json:"total"`
	Currency       string       `json:"currency"`
}

// inferType derives the payment type from the amounts present.
func inferType(cash float64, points int) PaymentType {
	switch {
	case points > 0 && cash > 0:
		return Hybrid
	case points > 0:
		return Points
	default:
		return Cash
	}
}

func intPtr(i int) *int {
	return &i
}
