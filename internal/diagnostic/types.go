package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"trip-decoder/internal/common"
	"trip-decoder/internal/document"
)

// Diagnostic codes.
const (
	// CodeUnknownStatus marks a status string that mapped to the default status.
	CodeUnknownStatus = "unknown-status"
	// CodeDroppedEntry marks a sub-record removed from its collection.
	CodeDroppedEntry = "dropped-entry"
	// CodeItineraryUnavailable marks a trip whose nested itinerary failed to decode.
	CodeItineraryUnavailable = "itinerary-unavailable"
	// CodeMalformedBlock marks an optional block that was ignored.
	CodeMalformedBlock = "malformed-block"
	// CodeDanglingReference marks a booking group member with no matching option.
	CodeDanglingReference = "dangling-reference"
	// CodeRecordFailed marks a whole document that failed to decode.
	CodeRecordFailed = "record-failed"
)

// Diagnostics holds all diagnostic information from decoding.
// A nil *Diagnostics discards everything added to it.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity `json:"severity"`
	// Code is a stable identifier for this type of diagnostic.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// DocumentID identifies the source document (if known).
	DocumentID string `json:"documentId,omitempty"`
	// Path locates the value inside the document (if any).
	Path document.Path `json:"path,omitempty"`
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText encodes the severity by name.
func (s DiagnosticSeverity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, path document.Path) {
	if d == nil {
		return
	}

	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Path:     path,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, path document.Path) {
	if d == nil {
		return
	}

	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Path:     path,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, path document.Path) {
	if d == nil {
		return
	}

	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Path:     path,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return d != nil && len(d.Errors) > 0
}

// Len returns the number of diagnostics of all severities.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}

	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	if d == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// WithDocument returns a copy with DocumentID set on every diagnostic
// that does not carry one yet.
func (d Diagnostics) WithDocument(id string) Diagnostics {
	stamp := func(in []Diagnostic) []Diagnostic {
		if len(in) == 0 {
			return nil
		}

		out := make([]Diagnostic, len(in))
		for i, diag := range in {
			if diag.DocumentID == "" {
				diag.DocumentID = id
			}

			out[i] = diag
		}

		return out
	}

	return Diagnostics{
		Errors:   stamp(d.Errors),
		Warnings: stamp(d.Warnings),
		Infos:    stamp(d.Infos),
	}
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	if d == nil {
		return nil
	}

	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.DocumentID != "" {
		prefix = append(prefix, "["+d.DocumentID+"]")
	}

	if d.Path != document.Root {
		prefix = append(prefix, d.Path.String())
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
