package itinerary

import (
	"trip-decoder/internal/cost"
	"trip-decoder/internal/document"
	"trip-decoder/internal/transport"
)

// flights reads the flight legs. Three layouts are stored:
//
//	"allFlights": [leg, ...]                    (or an index-keyed map)
//	"flights": [leg, ...]                       (or an index-keyed map)
//	"flights": {"outbound": leg, "return": leg, "allFlights": [...]}
//
// A stored total is ignored; the total is the sum of the legs.
func (as *Assembler) flights(a document.Accessor) (FlightItinerary, error) {
	out := FlightItinerary{Additional: []transport.FlightDetails{}}

	raw, path, ok, err := legSource(a)
	if err != nil {
		return FlightItinerary{}, err
	}

	if !ok {
		return out, nil
	}

	legs, err := as.legs(raw, path)
	if err != nil {
		return FlightItinerary{}, err
	}

	costs := make([]cost.FlexibleCost, 0, len(legs))

	for i := range legs {
		leg := &legs[i]
		costs = append(costs, leg.Cost)

		switch i {
		case 0:
			out.Outbound = leg
		case 1:
			out.Return = leg
		default:
			out.Additional = append(out.Additional, *leg)
		}
	}

	out.TotalCost = cost.Sum(costs...)

	return out, nil
}

// legSource finds the raw stored legs, of any layout.
func legSource(a document.Accessor) (raw any, path document.Path, ok bool, err error) {
	if raw, ok := a.Raw("allFlights"); ok {
		return raw, a.Sub("allFlights"), true, nil
	}

	raw, ok = a.Raw("flights")
	if !ok {
		return nil, "", false, nil
	}

	nested, ok := a.Doc("flights")
	if !ok || !isRoleLayout(nested) {
		return raw, a.Sub("flights"), true, nil
	}

	if all, ok := nested.Raw("allFlights"); ok {
		return all, nested.Sub("allFlights"), true, nil
	}

	if nested.Has("return") && !nested.Has("outbound") {
		return nil, "", false, document.Malformed(nested.Path(), "return leg without an outbound leg")
	}

	roles := make([]any, 0, 2)

	for _, key := range []string{"outbound", "return"} {
		if leg, ok := nested.Raw(key); ok {
			roles = append(roles, leg)
		}
	}

	if extra, ok := nested.Seq("additional"); ok {
		roles = append(roles, extra...)
	}

	return roles, nested.Path(), true, nil
}

// isRoleLayout tells a role-keyed flights document from an index-keyed map.
func isRoleLayout(a document.Accessor) bool {
	_, ok := a.First("allFlights", "outbound", "return")
	return ok
}

func (as *Assembler) legs(raw any, path document.Path) ([]transport.FlightDetails, error) {
	items, err := transport.NormalizeSequence(raw, path)
	if err != nil {
		return nil, err
	}

	legs := make([]transport.FlightDetails, 0, len(items))

	for i := range items {
		entry, err := document.Element(items, i, path)
		if err != nil {
			return nil, err
		}

		details, err := as.transports.Decode(entry.Document(), entry.Path(), transport.Flight)
		if err != nil {
			return nil, err
		}

		flight, ok := details.(transport.FlightDetails)
		if !ok {
			return nil, document.Malformed(entry.Path(), "flight leg decoded as %s", details.Mode())
		}

		legs = append(legs, flight)
	}

	return legs, nil
}
