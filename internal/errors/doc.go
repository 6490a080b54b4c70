// Package errors provides error handling conventions for cpp-scaffold.
//
// It defines sentinel errors for the configuration engine's failure taxonomy,
// a structured MigrationError for schema upgrades, and an ExitError type that
// carries exit codes and suggestions for the CLI layer.
//
// Sentinel errors are checked with [Is]:
//
//	if errors.Is(err, errors.ErrTypeMismatch) {
//	    // caller passed the wrong value kind
//	}
//
// The package also forwards Wrap, Wrapf, New, Newf, Is, As, Unwrap and Join
// from github.com/cockroachdb/errors so call sites only need one import.
package errors
