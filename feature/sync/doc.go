// Package sync implements the reconciliation and incremental-delta engine.
//
// A run builds an in-memory index of the property store's current records
// once, streams the owned-game inventory against it, and decides create,
// update or skip per item. Changed items additionally derive a day-granular
// playtime delta from the cumulative counter, appended to a separate records
// database with at most one record per game and day.
//
// Every decision is computed from the store's current truth, so re-running
// after an interruption recomputes the same decisions: there is no partial
// state to clean up. Item-scoped failures are folded into the run summary
// and never abort the run; only an empty inventory does.
package sync
