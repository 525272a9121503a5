package consolidation

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Status represents the lifecycle state of a consolidation request.
//
// State transitions:
//
//	Pending ──> Processing ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
//
// Completed is terminal and irreversible. Customer-initiated cancellation is
// allowed only from Pending; admin cancellation additionally permits
// Processing. Reconciliation synthesizes consolidations directly in
// Processing, since an admin override already confirmed them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a customer consolidation request.
	Pending

	// Processing indicates the warehouse is repacking the member packages.
	Processing

	// Completed indicates the resulting package exists. Terminal.
	Completed

	// Cancelled indicates the request was withdrawn and members were released. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// StatusFromString parses a persisted status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether the consolidation still holds its member packages.
// Active consolidations block their members from joining another one.
func (s Status) IsActive() bool {
	return s == Pending || s == Processing
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanCancel reports whether cancellation is allowed from this status.
// Customers may cancel only pending requests; admins may also cancel
// consolidations already in processing.
func (s Status) CanCancel(adminOverride bool) bool {
	if s == Pending {
		return true
	}
	return adminOverride && s == Processing
}
