// Package scheduler executes planned waves of generation assignments. It
// reserves each wave's context budget against the shared ledger, runs the
// wave's assignments in consecutive bounded batches, keeps the lifecycle
// tracker up to date, and returns per-assignment results in assignment
// order. Individual assignment failures are absorbed into their results;
// only errors escaping the batch machinery itself fail the wave.
package scheduler
