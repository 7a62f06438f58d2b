// Package store provides SQLite-backed durable storage for benchmark sweeps.
//
// Two tables are kept:
//   - runs: one row per sweep, with its configuration, host description
//     and final status
//   - measurements: one row per engine invocation, keyed by (run_id, seq)
//
// Measurements are read back in seq order, which is the order the sweep
// produced them, so a stored run can be re-aggregated and re-reported
// byte-for-byte.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
