// Package analytics is the metric engine: a library of independent
// aggregation routines over the canonical transaction table.
//
// Every routine is a pure function Table -> result. Routines never mutate
// the table, share no state with each other and may run in any order or in
// parallel over the same table. Results are ephemeral, computed fresh per
// call and owned by the caller.
//
// All routines assume a non-empty, invariant-satisfying table. Behavior on
// an empty table is undefined and must be guarded by the caller; treat a
// failure there as a data-quality problem, not a system fault.
package analytics
