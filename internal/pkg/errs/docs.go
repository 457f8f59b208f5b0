// Package errs provides standardized error types for the parcel tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines the application's error taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or incomplete input,
//     the caller's fault, never retried automatically
//   - ObjectNotFoundError: no such record or reference
//   - UnauthenticatedError / UnauthorizedError: identity or role check failed
//   - InconsistentStateError: a secondary index pointed to a missing primary
//     record, signalling a data-repair need rather than a user error
//   - StorageError: a store adapter call failed or timed out
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method resolving to the sentinel, so boundary code can classify
//     errors with errors.Is and map them to transport status codes
//
// No internal stack or trace detail crosses the application boundary; errors
// expose a stable machine-readable kind plus a human message.
package errs
