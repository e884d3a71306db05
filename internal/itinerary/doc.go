// Package itinerary assembles a DetailedItinerary from its stored document.
//
// Failures are tiered. A flight leg that does not decode fails the whole
// itinerary, since legs are assigned outbound, return and additional roles
// by position. A daily plan, accommodation or activity that does not decode
// is dropped and reported, unless the assembler is strict. Optional sections
// default to empty values and never fail.
package itinerary
