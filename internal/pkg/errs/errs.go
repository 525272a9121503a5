package errs

import (
	"fmt"
	"strings"
)

// sanitize removes line breaks from values before they are embedded in error
// messages, keeping log output on a single line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ErrObjectNotFound is the sentinel error for all object lookup failures.
// Use errors.Is(err, ErrObjectNotFound) to classify errors of this kind.
var ErrObjectNotFound = fmt.Errorf("object not found")

// ObjectNotFoundError indicates that a referenced entity does not exist.
// ParamName identifies which reference failed to resolve and ID carries
// the identifier that was looked up.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ErrValueIsInvalid is the sentinel error for malformed input values.
var ErrValueIsInvalid = fmt.Errorf("value is invalid")

// ValueIsInvalidError indicates that a supplied value failed validation.
// This is the error returned for client-correctable input problems; it is
// never retried automatically.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ErrValueIsOutOfRange is the sentinel error for values outside allowed bounds.
var ErrValueIsOutOfRange = fmt.Errorf("value is out of range")

// ValueIsOutOfRangeError indicates that a numeric value lies outside its
// permitted [Min, Max] interval.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("value is invalid: %s is %s, min value is %s, max value is %s",
		sanitize(fmt.Sprintf("%v", e.Value)), e.ParamName,
		fmt.Sprintf("%v", e.Min), fmt.Sprintf("%v", e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause.Error()))
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ErrValueIsRequired is the sentinel error for missing required values.
var ErrValueIsRequired = fmt.Errorf("value is required")

// ValueIsRequiredError indicates that a required value was not supplied.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ErrForbidden is the sentinel error for ownership and authorization failures.
var ErrForbidden = fmt.Errorf("forbidden")

// ForbiddenError indicates that the acting user does not own the entity it
// attempted to mutate. Multi-entity operations fail with this error before
// any mutation takes place, so a forbidden request never partially succeeds.
type ForbiddenError struct {
	EntityName string
	EntityID   string
	ActorID    string
	Cause      error
}

// NewForbiddenError creates a ForbiddenError for the given entity and actor.
func NewForbiddenError(entityName, entityID, actorID string) *ForbiddenError {
	return &ForbiddenError{EntityName: entityName, EntityID: entityID, ActorID: actorID}
}

func (e *ForbiddenError) Error() string {
	msg := fmt.Sprintf("%s: actor %s does not own %s %s", ErrForbidden, e.ActorID, e.EntityName, e.EntityID)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause.Error()))
	}
	return msg
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ErrConflict is the sentinel error for state-transition conflicts.
var ErrConflict = fmt.Errorf("conflict")

// ConflictError indicates that an entity is not in an eligible state for the
// requested transition, for example completing an already-completed
// consolidation or shipping a package that is already in transit.
type ConflictError struct {
	EntityName string
	EntityID   string
	Details    string
	Cause      error
}

// NewConflictError creates a ConflictError describing why the transition was rejected.
func NewConflictError(entityName, entityID, details string) *ConflictError {
	return &ConflictError{EntityName: entityName, EntityID: entityID, Details: details}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(entityName, entityID, details string, cause error) *ConflictError {
	return &ConflictError{EntityName: entityName, EntityID: entityID, Details: details, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s: %s", ErrConflict, e.EntityName, e.EntityID, sanitize(e.Details))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause.Error()))
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ErrExternalService is the sentinel error for collaborator failures.
var ErrExternalService = fmt.Errorf("external service error")

// ExternalServiceError indicates that an external collaborator is unconfigured
// or returned an error. The affected entity is left unmodified, so the failed
// operation is safely retriable by the caller.
type ExternalServiceError struct {
	Service string
	Cause   error
}

// NewExternalServiceError creates an ExternalServiceError without an underlying cause,
// typically used when a collaborator is not configured at all.
func NewExternalServiceError(service string) *ExternalServiceError {
	return &ExternalServiceError{Service: service}
}

// NewExternalServiceErrorWithCause creates an ExternalServiceError wrapping the
// collaborator's underlying failure.
func NewExternalServiceErrorWithCause(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrExternalService, e.Service, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrExternalService, e.Service)
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}

// ErrPartialFailure is the sentinel error for operations interrupted mid-sequence.
var ErrPartialFailure = fmt.Errorf("partial failure")

// PartialFailureError indicates that an operation failed after some of its
// steps already took effect and cannot be rolled back, for example when a
// carrier label was created externally but the local write failed.
// CompletedSteps records what already happened so an operator can reconcile.
type PartialFailureError struct {
	Operation      string
	CompletedSteps []string
	Cause          error
}

// NewPartialFailureError creates a PartialFailureError listing the steps that
// completed before the underlying failure.
func NewPartialFailureError(operation string, completedSteps []string, cause error) *PartialFailureError {
	return &PartialFailureError{Operation: operation, CompletedSteps: completedSteps, Cause: cause}
}

func (e *PartialFailureError) Error() string {
	msg := fmt.Sprintf("%s: %s, completed steps: [%s]",
		ErrPartialFailure, e.Operation, strings.Join(e.CompletedSteps, ", "))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause.Error()))
	}
	return msg
}

func (e *PartialFailureError) Unwrap() error {
	return ErrPartialFailure
}
