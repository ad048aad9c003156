// Package history persists per-file conversion outcomes in SQLite.
//
// The ledger is append-only: each invocation records its input, artifacts,
// and status so `vizcast history` can answer what was converted, when, and
// how it went. The store is safe for concurrent writers within one process.
package history
