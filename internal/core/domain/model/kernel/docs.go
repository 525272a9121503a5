// Package kernel provides core domain primitives for the forwarding system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Weight, Dimensions: measured values with unit normalization for aggregation
//   - Money: a monetary amount with currency
//   - OwnerRef: the normalized owner reference (raw id or populated account)
//   - PhotoRef: a reference to a stored warehouse photo
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
