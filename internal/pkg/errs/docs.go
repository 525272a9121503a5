// Package errs provides standardized error types for the forwarding application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines the full error taxonomy of the lifecycle engine:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input,
//     always client-correctable and never retried automatically
//   - ObjectNotFoundError: a referenced package, consolidation, or shipment
//     does not exist
//   - ForbiddenError: ownership mismatch; all-or-nothing for multi-entity
//     operations
//   - ConflictError: the entity is not in an eligible state for the requested
//     transition
//   - ExternalServiceError: a collaborator (e.g. the carrier API) is
//     unconfigured or failed; the entity is left unmodified
//   - PartialFailureError: an operation failed after irreversible steps
//     already completed, carrying the list of completed steps
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
