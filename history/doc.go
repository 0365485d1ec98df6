// Package history persists completed assignments per exchange group.
//
// Each group (for example an office or a family) runs one exchange per
// period. The pairings of the most recent earlier period become the
// forbidden pairs of the next run, so callers no longer have to send
// previous_assignments themselves.
//
// Storage is a single SQLite file opened in WAL mode.
package history
