// Package store fetches raw trip documents from where producers wrote them:
// JSON exports, MongoDB collections and Redis keys.
//
// Sources only fetch and normalize native value types (BSON dates, object
// IDs, JSON numbers) into document.Document values. Decoding is left to
// the decoders.
package store

import (
	"context"

	"trip-decoder/internal/document"
)

// Source fetches a set of raw trip documents.
type Source interface {
	Fetch(ctx context.Context) ([]document.Snapshot, error)
}
