// Package document provides typed, defaulting field extraction from untyped
// documents as delivered by the storage collaborator.
//
// A Document is a string-keyed tree whose leaves are strings, numbers,
// booleans, nulls, timestamps, nested documents and sequences. Every read goes
// through an Accessor, which knows the Path it is positioned at so failures
// can name the exact field, e.g. "trips[3].itinerary.flights[0].departure.airportCode".
//
// # Required vs. optional
//
// Each getter comes in up to three forms:
//
//	a.String("notes", "")          // default when absent or wrong-typed
//	a.LookupString("notes")        // value plus presence flag
//	a.RequireString("id")          // *DecodeError when absent or wrong-typed
//
// Nulls count as absent. Getters never panic and never mutate the document.
package document
