// Package pack provides domain entities and business logic for package
// management in the forwarding system. It implements the Package aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Package: The aggregate root tracking a parcel from warehouse intake to delivery
//   - Status: A state machine that enforces valid package status transitions
//
// Key business rules:
//   - Packages must have a valid identifier, owner, tracking number, and measurements
//   - Only received packages may join a new consolidation or shipment
//   - A package references at most one active consolidation at a time
//   - Delivered is terminal; re-applying the current status is a no-op
//   - Consolidated-result packages carry the ids of the members they were built from
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package pack
