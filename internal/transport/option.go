package transport

import (
	"fmt"

	"trip-decoder/internal/cost"
	"trip-decoder/internal/diagnostic"
	"trip-decoder/internal/document"
)

// Option is one bookable way of making a journey.
type Option struct {
	ID            string             `json:"id"`
	Type          Type               `json:"type"`
	Details       Details            `json:"details"`
	EstimatedCost cost.TransportCost `json:"estimatedCost"`
	Notes         string             `json:"notes,omitempty"`
	Recommended   bool               `json:"recommended"`
}

// BookingGroup lists options that must be booked together.
// Options are referenced by ID, never embedded.
type BookingGroup struct {
	ID          string   `json:"id"`
	OptionIDs   []string `json:"optionIds"`
	Description string   `json:"description,omitempty"`
}

// Plan is the major transportation section of an itinerary.
type Plan struct {
	Options []Option       `json:"options"`
	Groups  []BookingGroup `json:"bookingGroups"`
}

// EmptyPlan returns a plan with non-nil empty collections.
func EmptyPlan() Plan {
	return Plan{Options: []Option{}, Groups: []BookingGroup{}}
}

// Option returns the option with the given ID.
func (p Plan) Option(id string) (Option, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}

	return Option{}, false
}

// Members resolves the options of a group, skipping unknown references.
func (p Plan) Members(g BookingGroup) []Option {
	out := make([]Option, 0, len(g.OptionIDs))

	for _, id := range g.OptionIDs {
		if o, ok := p.Option(id); ok {
			out = append(out, o)
		}
	}

	return out
}

// Option decodes a transport option.
func (d *Decoder) Option(doc document.Document, path document.Path) (Option, error) {
	a := document.At(doc, path)

	id, err := a.RequireString("id")
	if err != nil {
		return Option{}, err
	}

	details, err := d.Decode(doc, path, Unspecified)
	if err != nil {
		return Option{}, err
	}

	raw, _ := a.Raw("estimatedCost")

	return Option{
		ID:            id,
		Type:          details.Mode(),
		Details:       details,
		EstimatedCost: d.costs.Transport(raw, a.Sub("estimatedCost")),
		Notes:         a.String("notes", ""),
		Recommended:   a.Bool("recommended", a.Bool("isRecommended", false)),
	}, nil
}

// Group decodes a booking group.
func (d *Decoder) Group(doc document.Document, path document.Path) (BookingGroup, error) {
	a := document.At(doc, path)

	id, err := a.RequireString("id")
	if err != nil {
		return BookingGroup{}, err
	}

	key, _ := a.First("optionIds", "transportOptionIds")

	ids := a.Strings(key)
	if ids == nil {
		ids = []string{}
	}

	return BookingGroup{
		ID:          id,
		OptionIDs:   ids,
		Description: a.String("description", ""),
	}, nil
}

// Plan decodes a major transportation section. It never fails: options and
// groups that do not decode are dropped and reported to diags.
func (d *Decoder) Plan(value any, path document.Path, diags *diagnostic.Diagnostics) Plan {
	plan := EmptyPlan()

	if value == nil {
		return plan
	}

	doc, ok := document.AsDocument(value)
	if !ok {
		diags.AddWarning(diagnostic.CodeMalformedBlock,
			fmt.Sprintf("major transportation ignored: expected document, got %s", document.KindOf(value)), path)

		return plan
	}

	a := document.At(doc, path)

	optionsKey, _ := a.First("options", "transportOptions")
	for _, entry := range d.entries(a, optionsKey, diags) {
		o, err := d.Option(entry.Document(), entry.Path())
		if err != nil {
			d.drop(diags, entry.Path(), "transport option", err)
			continue
		}

		plan.Options = append(plan.Options, o)
	}

	for _, entry := range d.entries(a, "bookingGroups", diags) {
		g, err := d.Group(entry.Document(), entry.Path())
		if err != nil {
			d.drop(diags, entry.Path(), "booking group", err)
			continue
		}

		for _, id := range g.OptionIDs {
			if _, ok := plan.Option(id); !ok {
				diags.AddWarning(diagnostic.CodeDanglingReference,
					fmt.Sprintf("booking group %s references unknown option %q", g.ID, id), entry.Path())
			}
		}

		plan.Groups = append(plan.Groups, g)
	}

	return plan
}

// entries normalizes a collection field and returns its document elements.
// Elements that are not documents are dropped.
func (d *Decoder) entries(a document.Accessor, key string, diags *diagnostic.Diagnostics) []document.Accessor {
	raw, ok := a.Raw(key)
	if !ok {
		return nil
	}

	items, err := NormalizeSequence(raw, a.Sub(key))
	if err != nil {
		d.drop(diags, a.Sub(key), "collection", err)
		return nil
	}

	out := make([]document.Accessor, 0, len(items))

	for i := range items {
		entry, err := document.Element(items, i, a.Sub(key))
		if err != nil {
			d.drop(diags, a.Sub(key).Index(i), "entry", err)
			continue
		}

		out = append(out, entry)
	}

	return out
}

func (d *Decoder) drop(diags *diagnostic.Diagnostics, path document.Path, what string, err error) {
	d.log.Warn("dropped "+what, "path", path.String(), "error", err)
	diags.AddWarning(diagnostic.CodeDroppedEntry, fmt.Sprintf("%s dropped: %v", what, err), path)
}
