package trip

import (
	"strings"

	"trip-decoder/internal/common"
	"trip-decoder/internal/match"
)

// Status is the processing state of a trip.
type Status int

const (
	Pending Status = iota
	InProgress
	Completed
	Cancelled
	Failed
)

// String returns the document spelling of the status.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case InProgress:
		return "inProgress"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return common.UnknownStr
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Statuses written by earlier producers. Matched exactly, before enum names.
var legacyStatuses = map[string]Status{
	"submitted":  Pending,
	"processing": InProgress,
	"failed":     Cancelled,
}

// Enum names, folded.
var statusNames = map[string]Status{
	"pending":    Pending,
	"inprogress": InProgress,
	"completed":  Completed,
	"cancelled":  Cancelled,
	"failed":     Failed,
}

// ParseStatus maps a stored status string onto Status. The legacy table is
// consulted first, ignoring case and surrounding space, except that only the
// lower-case "failed" is legacy: "failed" is Cancelled while "Failed" is Failed.
// ok is false for unrecognized values, which map to Pending.
func ParseStatus(s string) (status Status, ok bool) {
	trimmed := strings.TrimSpace(s)
	if key := strings.ToLower(trimmed); key != "failed" || trimmed == "failed" {
		if status, ok := legacyStatuses[key]; ok {
			return status, true
		}
	}

	if status, ok := match.Lookup(statusNames, s); ok {
		return status, true
	}

	return Pending, false
}

// suggestThreshold is the similarity a misspelling needs to earn a suggestion.
const suggestThreshold = 0.7

// suggestStatus returns the status name closest to an unrecognized s.
func suggestStatus(s string) (string, bool) {
	names := make([]string, 0, Failed+1)
	for st := Pending; st <= Failed; st++ {
		names = append(names, st.String())
	}

	return match.Suggest(s, names, suggestThreshold)
}
