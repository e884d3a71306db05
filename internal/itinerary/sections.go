package itinerary

import (
	"fmt"

	"trip-decoder/internal/diagnostic"
	"trip-decoder/internal/document"
)

func bookingInstructions(a document.Accessor, diags *diagnostic.Diagnostics) BookingInstructions {
	out := BookingInstructions{Steps: []string{}, Tips: []string{}, Links: map[string]string{}}

	s, ok := section(a, "bookingInstructions", diags)
	if !ok {
		return out
	}

	out.Overview = s.Text("overview", s.Text("general", ""))
	out.Steps = nonNil(s.Strings("steps"))
	out.Tips = nonNil(s.Strings("tips"))
	out.Links = s.StringMap("links")

	return out
}

func emergencyInfo(a document.Accessor, diags *diagnostic.Diagnostics) EmergencyInfo {
	out := EmergencyInfo{Hospitals: []string{}, Contacts: map[string]string{}}

	s, ok := section(a, "emergencyInfo", diags)
	if !ok {
		return out
	}

	out.EmergencyNumber = s.Text("emergencyNumber", s.Text("localEmergency", ""))
	out.Embassy = s.Text("embassy", "")
	out.Hospitals = nonNil(s.Strings("hospitals"))
	out.Contacts = s.StringMap("contacts")
	out.Notes = s.Text("notes", "")

	return out
}

// section returns an optional section document. A section of the wrong
// type is reported and treated as absent.
func section(a document.Accessor, key string, diags *diagnostic.Diagnostics) (document.Accessor, bool) {
	raw, ok := a.Raw(key)
	if !ok {
		return document.Accessor{}, false
	}

	s, ok := a.Doc(key)
	if !ok {
		diags.AddInfo(diagnostic.CodeMalformedBlock,
			fmt.Sprintf("%s ignored: expected document, got %s", key, document.KindOf(raw)), a.Sub(key))
	}

	return s, ok
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
