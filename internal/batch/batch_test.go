package batch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-decoder/internal/config"
	"trip-decoder/internal/diagnostic"
	"trip-decoder/internal/document"
	"trip-decoder/internal/trip"
)

var t0 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestDecoder(workers int) *Decoder {
	return NewDecoder(trip.NewFromConfig(config.Default(), nil), workers, nil)
}

func snapshot(i int) document.Snapshot {
	id := fmt.Sprintf("trip-%02d", i)

	return document.Snapshot{
		ID: "doc/" + id,
		Data: document.Document{
			"id":          id,
			"userId":      "u1",
			"destination": "Tokyo",
			"startDate":   t0,
			"endDate":     t0.AddDate(0, 0, 7),
			"createdAt":   t0,
			"status":      "submitted",
		},
	}
}

func batchWithFailure(n, bad int) []document.Snapshot {
	snaps := make([]document.Snapshot, n)
	for i := range snaps {
		snaps[i] = snapshot(i)
	}

	delete(snaps[bad].Data, "id")

	return snaps
}

func TestDecode_Isolation(t *testing.T) {
	d := newTestDecoder(1)

	res := d.Decode(batchWithFailure(5, 3))

	require.Len(t, res.Trips, 4)
	for i, want := range []string{"trip-00", "trip-01", "trip-02", "trip-04"} {
		assert.Equal(t, want, res.Trips[i].ID)
	}

	require.Len(t, res.Failures, 1)
	f := res.Failures[0]
	assert.Equal(t, 3, f.Index)
	assert.Equal(t, "doc/trip-03", f.DocumentID)
	assert.ErrorIs(t, f, document.ErrMissingField)
	assert.Equal(t, "document doc/trip-03 (#3): missing field trips[3].id", f.Error())

	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeRecordFailed, res.Diagnostics.Errors[0].Code)
	assert.Equal(t, document.Path("trips[3].id"), res.Diagnostics.Errors[0].Path)
	assert.Equal(t, "doc/trip-03", res.Diagnostics.Errors[0].DocumentID)
	assert.Equal(t, diagnostic.DiagnosticError, res.Diagnostics.Errors[0].Severity)
}

func TestDecode_MergesDiagnostics(t *testing.T) {
	d := newTestDecoder(1)

	snaps := []document.Snapshot{snapshot(0), snapshot(1)}
	snaps[1].Data["status"] = "totally-unknown"

	res := d.Decode(snaps)
	require.Len(t, res.Trips, 2)
	assert.Equal(t, trip.Pending, res.Trips[1].Status)

	require.Len(t, res.Diagnostics.Warnings, 1)
	w := res.Diagnostics.Warnings[0]
	assert.Equal(t, diagnostic.CodeUnknownStatus, w.Code)
	assert.Equal(t, "doc/trip-01", w.DocumentID)
	assert.Equal(t, document.Path("trips[1].status"), w.Path)
}

func TestDecode_Empty(t *testing.T) {
	res := newTestDecoder(1).Decode(nil)
	assert.NotNil(t, res.Trips)
	assert.Empty(t, res.Trips)
	assert.Empty(t, res.Failures)
}

func TestDecode_DocumentIDFallback(t *testing.T) {
	snaps := batchWithFailure(2, 1)
	snaps[1].ID = ""
	snaps[1].Data["userId"] = nil
	snaps[1].Data["id"] = "inline-id"

	res := newTestDecoder(1).Decode(snaps)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "inline-id", res.Failures[0].DocumentID)
}

func TestDecodeParallel_MatchesSequential(t *testing.T) {
	snaps := batchWithFailure(40, 17)
	snaps[5].Data["status"] = "weird"
	snaps[29].Data["itinerary"] = "broken"

	d := newTestDecoder(4)

	want := d.Decode(snaps)

	got, err := d.DecodeParallel(t.Context(), snaps)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Len(t, got.Trips, 39)
}

func TestDecodeParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newTestDecoder(2).DecodeParallel(ctx, batchWithFailure(10, 0))
	require.ErrorIs(t, err, context.Canceled)
}
