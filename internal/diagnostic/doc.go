// Package diagnostic collects recoverable decode findings: entries that were
// dropped, values that fell back to defaults, and nested records that could
// not be decoded while their parent still was.
//
// Key capabilities:
//   - Severity-bucketed findings with stable codes
//   - Document and path attribution for every finding
//   - Merging of per-document results into batch results
package diagnostic
