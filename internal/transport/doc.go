// Package transport decodes transport legs into a closed set of variants.
//
// A transport document names its mode with a discriminator (transportType,
// or type) and carries a mode-specific payload, either inline or wrapped:
//
//	{"transportType": "train", "departure": {...}, "arrival": {...}}
//	{"type": "train", "details": {"departure": {...}, "arrival": {...}}}
//
// Flights, trains, buses and ferries share one route layout; car rentals have
// pickup and drop-off fields instead. Unknown modes and payloads that do not
// match their discriminator are decode errors.
//
// NormalizeSequence is the one place that undoes the storage quirk of
// sequences written as maps keyed by stringified indices.
package transport
