// Package batch sequences per-file conversions across many inputs.
//
// Each input runs through its own renderer call with file-scoped artifacts,
// so a worker pool may process the batch concurrently without shared state.
// A failure is isolated to its file and recorded in the ledger; the batch
// always runs to completion.
package batch
