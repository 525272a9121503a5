package pack

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Status represents the lifecycle state of a package.
// It implements a state machine with defined transitions to ensure packages
// follow the warehouse workflow.
//
// State transitions:
//
//	Received ──┬──> Consolidated ──┐
//	     ▲     │         │         │
//	     └─────│─────────┘         │
//	           │  (consolidation   │
//	           │     cancelled)    │
//	           └──────> Shipped <──┘
//	                       │
//	                       v
//	                  InTransit ──> Delivered
//
// Delivered is terminal. Admin overrides may force any valid status, but a
// package forced into Consolidated without a consolidation link re-enters the
// reconciliation workflow.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status after warehouse intake.
	// Only received packages may be admitted into a new consolidation or shipment.
	Received

	// Consolidated indicates the package is a member of an active consolidation.
	Consolidated

	// Shipped indicates the package was handed to a carrier as part of a shipment.
	Shipped

	// InTransit indicates the carrier reported movement toward the destination.
	InTransit

	// Delivered is the terminal status. No transitions leave it.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "unknown",
		Received:     "received",
		Consolidated: "consolidated",
		Shipped:      "shipped",
		InTransit:    "in_transit",
		Delivered:    "delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:     "received",
		Consolidated: "consolidated",
		Shipped:      "shipped",
		InTransit:    "in_transit",
		Delivered:    "delivered",
	}
}

// StatusFromString resolves a status from its string name.
// Used when admin requests and persistence carry statuses as text.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid package status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanJoinConsolidation reports whether a package in this status may be
// admitted into a new consolidation. Only received packages qualify.
func (s Status) CanJoinConsolidation() bool {
	return s == Received
}

// CanShip reports whether a package in this status may be added to a new
// shipment. Received packages and consolidated packages (when the resulting
// box is shipped together with loose ones) qualify.
func (s Status) CanShip() bool {
	return s == Received || s == Consolidated
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered
}
