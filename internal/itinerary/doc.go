// Package itinerary is the consistency engine for a trip document.
//
// Every exported operation is a pure function: it takes a domain.Trip (or a
// trip list), never mutates it, and returns a new value. Operations that can
// be no-ops report whether anything changed so callers can decide whether to
// record history or persist. Invalid ids, cities, or indices are never
// errors; the input is returned unchanged.
//
// After every structural change the engine re-derives the segment list from
// checkpoint adjacency (SyncSegments). Insert and field edits additionally
// regroup checkpoints by city, then by (day, start time) within each city.
// MoveCheckpoint and MoveDestination are explicit user overrides and do not
// re-sort.
//
// Returned trips may share backing arrays with their inputs only where the
// engine did not write, so snapshots held by History stay valid.
package itinerary
