// Package batch decodes collections of trip documents. A document that fails
// to decode is reported and left out; it never aborts the batch.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"trip-decoder/internal/diagnostic"
	"trip-decoder/internal/document"
	"trip-decoder/internal/logger"
	"trip-decoder/internal/trip"
)

// Failure is a document that did not decode.
type Failure struct {
	// Index is the position of the document in the input.
	Index      int    `json:"index"`
	DocumentID string `json:"documentId"`
	Err        error  `json:"-"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("document %s (#%d): %v", f.DocumentID, f.Index, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result holds the trips that decoded, in input order, and what went wrong
// with the rest.
type Result struct {
	Trips       []trip.Trip            `json:"trips"`
	Failures    []Failure              `json:"failures"`
	Diagnostics diagnostic.Diagnostics `json:"diagnostics"`
}

// Decoder decodes batches. It is safe for concurrent use.
type Decoder struct {
	trips   *trip.Decoder
	workers int
	log     *slog.Logger
}

// NewDecoder returns a Decoder. workers bounds DecodeParallel; zero or less
// means GOMAXPROCS.
func NewDecoder(trips *trip.Decoder, workers int, log *slog.Logger) *Decoder {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if trips == nil {
		trips = trip.NewDecoder(nil, log)
	}

	return &Decoder{trips: trips, workers: workers, log: logger.OrNop(log)}
}

// outcome is the decode result of one document.
type outcome struct {
	trip  trip.Trip
	err   error
	diags diagnostic.Diagnostics
}

// Decode decodes snaps one after another.
func (d *Decoder) Decode(snaps []document.Snapshot) Result {
	outcomes := make([]outcome, len(snaps))

	for i := range snaps {
		outcomes[i] = d.one(i, snaps[i])
	}

	return d.collect(snaps, outcomes)
}

// DecodeParallel decodes snaps on up to the configured number of workers.
// The result is the same as Decode's. It returns early with ctx's error
// when ctx is done.
func (d *Decoder) DecodeParallel(ctx context.Context, snaps []document.Snapshot) (Result, error) {
	outcomes := make([]outcome, len(snaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i := range snaps {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcomes[i] = d.one(i, snaps[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	return d.collect(snaps, outcomes), nil
}

func (d *Decoder) one(i int, snap document.Snapshot) outcome {
	var o outcome

	o.trip, o.err = d.trips.Decode(snap.Data, document.Root.Field("trips").Index(i), &o.diags)

	return o
}

func (d *Decoder) collect(snaps []document.Snapshot, outcomes []outcome) Result {
	res := Result{
		Trips:    make([]trip.Trip, 0, len(snaps)),
		Failures: []Failure{},
	}

	for i, o := range outcomes {
		id := documentID(snaps[i])

		if o.err != nil {
			o.diags.AddError(diagnostic.CodeRecordFailed, o.err.Error(), errorPath(o.err))
		}

		res.Diagnostics.Merge(o.diags.WithDocument(id))

		if o.err != nil {
			d.log.Warn("trip dropped from batch", "document", id, "index", i, "error", o.err)
			res.Failures = append(res.Failures, Failure{Index: i, DocumentID: id, Err: o.err})

			continue
		}

		res.Trips = append(res.Trips, o.trip)
	}

	return res
}

// documentID names a snapshot: its storage key, else its id field.
func documentID(snap document.Snapshot) string {
	if snap.ID != "" {
		return snap.ID
	}

	if id, ok := document.At(snap.Data, document.Root).LookupString("id"); ok && id != "" {
		return id
	}

	return ""
}

func errorPath(err error) document.Path {
	if de, ok := document.AsDecodeError(err); ok {
		return de.Path
	}

	return document.Root
}
