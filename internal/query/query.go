// Package query filters decoded trips with CEL expressions.
//
// An expression sees a single variable, trip, holding the facts built by
// Facts:
//
//	trip.status == "completed" && "Paris" in trip.destinations
//	trip.hasItinerary && trip.flightCashTotal < 500.0
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"trip-decoder/internal/trip"
)

// costLimit bounds the evaluation cost of a single expression.
const costLimit = 1000000

// ErrEmptyExpression is returned by Compile for a blank expression.
var ErrEmptyExpression = errors.New("empty filter expression")

// Filter is a compiled trip filter. It is safe for concurrent use.
type Filter struct {
	expr string
	prog cel.Program
}

// Compile parses and checks expr over the trip variable.
func Compile(expr string) (*Filter, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmptyExpression
	}

	env, err := cel.NewEnv(
		cel.Variable("trip", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	prog, err := env.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}

	return &Filter{expr: expr, prog: prog}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Filter {
	f, err := Compile(expr)
	if err != nil {
		panic(err)
	}

	return f
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter against t. A non-boolean result is no match.
func (f *Filter) Match(t trip.Trip) (bool, error) {
	out, _, err := f.prog.Eval(map[string]any{"trip": Facts(t)})
	if err != nil {
		return false, fmt.Errorf("evaluate %q on trip %s: %w", f.expr, t.ID, err)
	}

	matched, ok := out.Value().(bool)

	return ok && matched, nil
}

// Select returns the trips f matches, in order. It stops at the first
// evaluation error.
func (f *Filter) Select(trips []trip.Trip) ([]trip.Trip, error) {
	var out []trip.Trip

	for _, t := range trips {
		ok, err := f.Match(t)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, t)
		}
	}

	return out, nil
}

// Facts flattens t into the map an expression sees as trip.
func Facts(t trip.Trip) map[string]any {
	destinations := t.Destinations
	if destinations == nil {
		destinations = []string{}
	}

	facts := map[string]any{
		"id":              t.ID,
		"userId":          t.UserID,
		"status":          t.Status.String(),
		"destinations":    destinations,
		"startDate":       t.StartDate,
		"endDate":         t.EndDate,
		"hasItinerary":    t.Itinerary != nil,
		"itineraryState":  t.ItineraryState.String(),
		"flightCashTotal": 0.0,
		"legs":            int64(0),
	}

	if t.Itinerary != nil {
		facts["flightCashTotal"] = t.Itinerary.Flights.TotalCost.TotalCashValue
		facts["legs"] = int64(len(t.Itinerary.Flights.Legs()))
	}

	return facts
}
