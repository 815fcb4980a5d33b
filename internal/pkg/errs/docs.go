// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Validation errors (ValueIsRequired/ValueIsInvalid/ValueIsOutOfRange) are
// rejected before any write. BusinessRuleViolatedError carries a user-facing
// message for rule rejections (occupied table, invalid status transition).
// ObjectNotFoundError doubles as the tenant-isolation error: entities owned by
// another tenant are reported as not found.
package errs
