package itinerary

import (
	"fmt"
	"log/slog"

	"trip-decoder/internal/cost"
	"trip-decoder/internal/diagnostic"
	"trip-decoder/internal/document"
	"trip-decoder/internal/logger"
	"trip-decoder/internal/transport"
)

// Assembler decodes itineraries. It is safe for concurrent use.
type Assembler struct {
	costs      *cost.Decoder
	transports *transport.Decoder
	strict     bool
	log        *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithStrict makes daily plan, accommodation and activity failures fail
// the itinerary instead of dropping the entry.
func WithStrict(strict bool) Option {
	return func(a *Assembler) {
		a.strict = strict
	}
}

// WithLogger sets the logger for dropped entries.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		a.log = logger.OrNop(l)
	}
}

// NewAssembler returns an Assembler decoding costs and transport legs with
// the given decoders.
func NewAssembler(costs *cost.Decoder, transports *transport.Decoder, opts ...Option) *Assembler {
	a := &Assembler{
		costs:      costs,
		transports: transports,
		log:        logger.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.costs == nil {
		a.costs = cost.NewDecoder(nil, "", a.log)
	}

	if a.transports == nil {
		a.transports = transport.NewDecoder(a.costs, a.log)
	}

	return a
}

// Decode assembles the itinerary document at path. fallbackID is used when
// the document has no id of its own. Recoverable findings go to diags,
// which may be nil.
func (as *Assembler) Decode(doc document.Document, path document.Path, fallbackID string,
	diags *diagnostic.Diagnostics,
) (DetailedItinerary, error) {
	a := document.At(doc, path)

	id := a.String("id", "")
	if id == "" {
		id = fallbackID
	}

	if id == "" {
		return DetailedItinerary{}, document.Missing(a.Sub("id"))
	}

	flights, err := as.flights(a)
	if err != nil {
		return DetailedItinerary{}, err
	}

	days, err := collect(as, a, "daily plan", diags, as.dailyPlan, "dailyPlans", "days")
	if err != nil {
		return DetailedItinerary{}, err
	}

	stays, err := collect(as, a, "accommodation", diags, as.accommodation, "accommodations")
	if err != nil {
		return DetailedItinerary{}, err
	}

	totalCost, _ := a.Raw("totalCost")
	major, _ := a.Raw("majorTransportation")

	return DetailedItinerary{
		ID:                  id,
		Flights:             flights,
		DailyPlans:          days,
		Accommodations:      stays,
		TotalCost:           as.costs.Breakdown(totalCost, a.Sub("totalCost")),
		BookingInstructions: bookingInstructions(a, diags),
		EmergencyInfo:       emergencyInfo(a, diags),
		MajorTransportation: as.transports.Plan(major, a.Sub("majorTransportation"), diags),
	}, nil
}

// collect decodes the collection under the first present key. A field that
// is not a collection fails the caller; a failing entry is dropped unless
// the assembler is strict. The result is never nil.
func collect[T any](
	as *Assembler,
	a document.Accessor,
	what string,
	diags *diagnostic.Diagnostics,
	decode func(document.Accessor, *diagnostic.Diagnostics) (T, error),
	keys ...string,
) ([]T, error) {
	out := []T{}

	key, ok := a.First(keys...)
	if !ok {
		return out, nil
	}

	raw, _ := a.Raw(key)

	items, err := transport.NormalizeSequence(raw, a.Sub(key))
	if err != nil {
		return nil, err
	}

	for i := range items {
		v, err := decodeElement(items, i, a.Sub(key), diags, decode)
		if err != nil {
			if as.strict {
				return nil, err
			}

			as.drop(diags, a.Sub(key).Index(i), what, err)

			continue
		}

		out = append(out, v)
	}

	return out, nil
}

func decodeElement[T any](
	items []any,
	i int,
	path document.Path,
	diags *diagnostic.Diagnostics,
	decode func(document.Accessor, *diagnostic.Diagnostics) (T, error),
) (T, error) {
	entry, err := document.Element(items, i, path)
	if err != nil {
		var zero T
		return zero, err
	}

	return decode(entry, diags)
}

func (as *Assembler) drop(diags *diagnostic.Diagnostics, path document.Path, what string, err error) {
	as.log.Warn("dropped "+what, "path", path.String(), "error", err)
	diags.AddWarning(diagnostic.CodeDroppedEntry, fmt.Sprintf("%s dropped: %v", what, err), path)
}
