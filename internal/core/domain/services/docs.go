// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the forwarding system. It implements logic
// that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingCalculator: prices consolidations and shipments from a configured fee schedule
//   - OwnershipGuard: enforces per-customer isolation with an admin bypass
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
