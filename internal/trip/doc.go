// Package trip decodes trip documents, the top-level records of the store.
//
// A trip needs an id, a user, at least one destination and its three dates.
// Everything else degrades: unknown statuses read as pending, and an
// itinerary that fails to decode leaves the trip with ItineraryUnavailable
// instead of failing it.
package trip
