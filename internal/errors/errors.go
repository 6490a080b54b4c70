package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for the configuration engine.
var (
	// ErrInvalidKey indicates a key that fails the dotted-path grammar.
	ErrInvalidKey = errors.New("invalid configuration key")

	// ErrTypeMismatch indicates a value read or written with the wrong type tag.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidName indicates a profile or template name that fails validation.
	ErrInvalidName = errors.New("invalid name")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrSchemaTooNew indicates a persisted document written by a newer build.
	ErrSchemaTooNew = errors.New("document schema is newer than this build understands")

	// ErrReadOnly indicates an attempt to write a read-only registry key.
	ErrReadOnly = errors.New("key is read-only")

	// ErrUnregisteredKey indicates a key with no registry entry on a
	// registry-mediated path.
	ErrUnregisteredKey = errors.New("key is not registered")
)

// Forwarders so call sites need a single errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// MigrationError reports a failed schema migration step. The original
// document on disk is untouched when this error is returned.
type MigrationError struct {
	// FromVersion is the schema version the failing step started from.
	FromVersion int

	// ToVersion is the schema version the failing step targeted.
	ToVersion int

	// Cause is the underlying transform or I/O failure.
	Cause error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migrating schema v%d -> v%d: %v", e.FromVersion, e.ToVersion, e.Cause)
}

func (e *MigrationError) Unwrap() error {
	return e.Cause
}

// ExitError wraps an error with an exit code and optional suggestion for the
// CLI layer. It supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// Error returns the message of the underlying error, or a generic message
// when the underlying error is nil.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
