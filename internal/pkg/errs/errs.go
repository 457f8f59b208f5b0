package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every typed error in this
// package unwraps to exactly one of these, so boundary code can map an error
// to a transport status without knowing the concrete type.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrObjectNotFound    = errors.New("object not found")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInconsistentState = errors.New("inconsistent state")
	ErrStorageFailed     = errors.New("storage operation failed")
)

// sanitize flattens values destined for error messages to a single line so a
// hostile input cannot forge extra log lines.
func sanitize(v any) string {
	s := fmt.Sprintf("%s", v)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required value
// with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value
// with an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates a lookup missed.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a failed lookup.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a failed lookup with an
// underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// UnauthenticatedError indicates the caller presented no valid identity.
// Returned before any role or ownership check is considered.
type UnauthenticatedError struct {
	Reason string
	Cause  error
}

// NewUnauthenticatedError creates an error for a missing or invalid identity.
func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

// NewUnauthenticatedErrorWithCause creates an error for a missing or invalid
// identity with an underlying cause.
func NewUnauthenticatedErrorWithCause(reason string, cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason, Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrUnauthenticated, sanitize(e.Reason), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrUnauthenticated, sanitize(e.Reason))
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// UnauthorizedError indicates an authenticated caller lacks permission for an
// operation or target.
type UnauthorizedError struct {
	Operation string
	Reason    string
}

// NewUnauthorizedError creates an error for a denied operation.
func NewUnauthorizedError(operation, reason string) *UnauthorizedError {
	return &UnauthorizedError{Operation: operation, Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrUnauthorized, sanitize(e.Operation), sanitize(e.Reason))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InconsistentStateError indicates a secondary index resolved to a missing
// primary record. This is never a user error; it signals a data-repair need
// and is surfaced distinctly from ObjectNotFoundError.
type InconsistentStateError struct {
	IndexKey   string
	PrimaryKey string
}

// NewInconsistentStateError creates an error for a dangling index entry.
func NewInconsistentStateError(indexKey, primaryKey string) *InconsistentStateError {
	return &InconsistentStateError{IndexKey: indexKey, PrimaryKey: primaryKey}
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("%s: index %s points to missing record %s",
		ErrInconsistentState, sanitize(e.IndexKey), sanitize(e.PrimaryKey))
}

func (e *InconsistentStateError) Unwrap() error {
	return ErrInconsistentState
}

// StorageError indicates a store adapter call failed or timed out.
type StorageError struct {
	Operation string
	Cause     error
}

// NewStorageError creates an error for a failed store call.
func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{Operation: operation, Cause: cause}
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrStorageFailed, sanitize(e.Operation), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrStorageFailed, sanitize(e.Operation))
}

func (e *StorageError) Unwrap() error {
	return ErrStorageFailed
}
