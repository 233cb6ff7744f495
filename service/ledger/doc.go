// Package ledger implements context-budget accounting across concurrently
// active waves: reserve on wave start, idempotent release on wave end, and
// utilization snapshots that drive graceful shutdown.
package ledger
