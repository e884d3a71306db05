// Package match folds identifiers written in different producer conventions
// ("inProgress", "in_progress", "In Progress") onto one comparable form.
//
// Key functions:
//   - Fold: case-folds and strips separators
//   - Lookup: resolves a folded identifier against a table
package match
