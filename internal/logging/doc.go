// Package logging builds the slog loggers used across vizcast.
//
// Two handler formats are supported: a human-oriented console handler that
// colors levels when stdout is a terminal, and plain JSON for machine
// consumption. Attr helpers mirror the slog constructors so call sites stay
// terse and consistent.
package logging
