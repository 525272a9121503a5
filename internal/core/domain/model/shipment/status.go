package shipment

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Pending ──> Processing ──> InTransit ──> Delivered
//	   │   │        │  └───────────────────────┘
//	   │   └────────┼──────────> InTransit
//	   └────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. A shipment moves to Processing when
// its carrier label is created; drop-offs that skip label creation may go
// straight from Pending to InTransit.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a created shipment.
	Pending

	// Processing indicates the carrier label exists and the shipment awaits pickup.
	Processing

	// InTransit indicates the carrier has the shipment.
	InTransit

	// Delivered indicates the shipment reached its destination. Terminal.
	Delivered

	// Cancelled indicates the shipment was withdrawn before transit. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		InTransit:  "in_transit",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Processing: "processing",
		InTransit:  "in_transit",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Processing, InTransit, Cancelled},
		Processing: {InTransit, Delivered, Cancelled},
		InTransit:  {Delivered},
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

// CanTransitionTo reports whether moving to the target status is allowed.
// Transitioning to the current status is permitted and treated as a no-op
// by the aggregate.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}
