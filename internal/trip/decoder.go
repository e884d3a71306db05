package trip

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"trip-decoder/internal/common"
	"trip-decoder/internal/config"
	"trip-decoder/internal/cost"
	"trip-decoder/internal/diagnostic"
	"trip-decoder/internal/document"
	"trip-decoder/internal/itinerary"
	"trip-decoder/internal/logger"
	"trip-decoder/internal/transport"
)

// itineraryNamespace derives stable itinerary IDs from trip IDs.
var itineraryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("trip-decoder/itinerary"))

// Where nested itineraries are stored, in lookup order.
var itineraryContainers = []string{"destinationRecommendation", "recommendation"}

// Decoder decodes trip documents. It is safe for concurrent use.
type Decoder struct {
	itineraries *itinerary.Assembler
	log         *slog.Logger
}

// NewDecoder returns a Decoder assembling itineraries with itineraries.
func NewDecoder(itineraries *itinerary.Assembler, log *slog.Logger) *Decoder {
	if itineraries == nil {
		itineraries = itinerary.NewAssembler(nil, nil, itinerary.WithLogger(log))
	}

	return &Decoder{itineraries: itineraries, log: logger.OrNop(log)}
}

// NewFromConfig wires the cost, transport and itinerary decoders from cfg.
func NewFromConfig(cfg *config.Config, log *slog.Logger) *Decoder {
	if cfg == nil {
		cfg = config.Default()
	}

	costs := cost.NewDecoder(cfg.Points, cfg.Currency, log)
	transports := transport.NewDecoder(costs, log)
	assembler := itinerary.NewAssembler(costs, transports,
		itinerary.WithStrict(cfg.Decode.StrictItinerary),
		itinerary.WithLogger(log),
	)

	return NewDecoder(assembler, log)
}

// Decode decodes the trip document at path. Recoverable findings go to
// diags, which may be nil.
func (d *Decoder) Decode(doc document.Document, path document.Path, diags *diagnostic.Diagnostics) (Trip, error) {
	a := document.At(doc, path)

	id, err := a.RequireString("id")
	if err != nil {
		return Trip{}, err
	}

	userID, err := a.RequireString("userId")
	if err != nil {
		return Trip{}, err
	}

	destinations, err := allDestinations(a)
	if err != nil {
		return Trip{}, err
	}

	start, err := a.RequireTime("startDate")
	if err != nil {
		return Trip{}, err
	}

	end, err := a.RequireTime("endDate")
	if err != nil {
		return Trip{}, err
	}

	created, err := a.RequireTime("createdAt")
	if err != nil {
		return Trip{}, err
	}

	updated, ok := a.LookupTime("updatedAt")
	if !ok {
		updated = created
	}

	t := Trip{
		ID:                id,
		UserID:            userID,
		Destinations:      destinations,
		DepartureLocation: a.String("departureLocation", ""),
		StartDate:         start,
		EndDate:           end,
		CreatedAt:         created,
		UpdatedAt:         updated,
		Preferences:       preferences(a),
	}

	t.Status, t.RawStatus = d.status(a, id, diags)
	d.attachItinerary(&t, a, diags)

	return t, nil
}

// allDestinations prefers the plural field and falls back to the legacy
// singular one. Entries may be names or {name|city} documents.
func allDestinations(a document.Accessor) ([]string, error) {
	var names []string

	if raw, ok := a.Raw("destinations"); ok {
		if s, ok := raw.(string); ok {
			names = append(names, s)
		} else if items, err := transport.NormalizeSequence(raw, a.Sub("destinations")); err == nil {
			for _, item := range items {
				names = append(names, destinationName(item))
			}
		}
	}

	names = common.Filter(names, func(s string) bool {
		return strings.TrimSpace(s) != ""
	})

	if len(names) > 0 {
		return names, nil
	}

	single, err := a.RequireString("destination")
	if err != nil {
		if a.Has("destination") {
			return nil, err
		}

		return nil, document.Missing(a.Sub("destinations"))
	}

	return []string{single}, nil
}

func destinationName(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	if doc, ok := document.AsDocument(v); ok {
		e := document.At(doc, document.Root)
		return common.FirstNonBlank(e.String("name", ""), e.String("city", ""))
	}

	return ""
}

func (d *Decoder) status(a document.Accessor, id string, diags *diagnostic.Diagnostics) (Status, string) {
	raw, ok := a.Raw("status")
	if !ok {
		d.log.Debug("trip status defaulted", "trip", id)
		return Pending, ""
	}

	s, _ := raw.(string)

	status, known := ParseStatus(s)
	if !known {
		text := a.Text("status", fmt.Sprint(raw))
		d.log.Warn("unknown trip status", "trip", id, "status", text)
		msg := fmt.Sprintf("status %q mapped to %s", text, Pending)
		if name, ok := suggestStatus(text); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", name)
		}

		diags.AddWarning(diagnostic.CodeUnknownStatus, msg, a.Sub("status"))

		return Pending, text
	}

	return status, s
}

// attachItinerary decodes the nested itinerary. Its failure never fails
// the trip.
func (d *Decoder) attachItinerary(t *Trip, a document.Accessor, diags *diagnostic.Diagnostics) {
	raw, path, ok := locateItinerary(a)
	if !ok {
		t.ItineraryState = ItineraryAbsent
		return
	}

	doc, ok := document.AsDocument(raw)
	if !ok {
		d.unavailable(t, diags, document.Mismatch(path, document.KindDocument, raw))
		return
	}

	fallbackID := uuid.NewSHA1(itineraryNamespace, []byte(t.ID)).String()

	it, err := d.itineraries.Decode(doc, path, fallbackID, diags)
	if err != nil {
		d.unavailable(t, diags, err)
		return
	}

	t.Itinerary = &it
	t.ItineraryState = ItineraryAvailable
}

func (d *Decoder) unavailable(t *Trip, diags *diagnostic.Diagnostics, err error) {
	t.ItineraryState = ItineraryUnavailable
	t.ItineraryErr = err

	var path document.Path
	if de, ok := document.AsDecodeError(err); ok {
		path = de.Path
	}

	d.log.Warn("itinerary unavailable", "trip", t.ID, "error", err)
	diags.AddWarning(diagnostic.CodeItineraryUnavailable, fmt.Sprintf("itinerary unavailable: %v", err), path)
}

func locateItinerary(a document.Accessor) (any, document.Path, bool) {
	for _, key := range itineraryContainers {
		container, ok := a.Doc(key)
		if !ok {
			continue
		}

		if raw, ok := container.Raw("itinerary"); ok {
			return raw, container.Sub("itinerary"), true
		}
	}

	if raw, ok := a.Raw("itinerary"); ok {
		return raw, a.Sub("itinerary"), true
	}

	return nil, "", false
}

// preferences reads the preference answers from a preferences document,
// or from the trip itself in older documents.
func preferences(a document.Accessor) Preferences {
	p, ok := a.Doc("preferences")
	if !ok {
		p = a
	}

	return Preferences{
		Budget:          p.Text("budget", ""),
		TravelStyle:     p.Text("travelStyle", ""),
		GroupSize:       p.Text("groupSize", ""),
		Interests:       p.Strings("interests"),
		SpecialRequests: p.Text("specialRequests", ""),
	}
}
