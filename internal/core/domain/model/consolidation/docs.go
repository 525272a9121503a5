// Package consolidation contains the Consolidation aggregate: the workflow
// that merges several received packages into a single resulting package.
//
// A customer request starts Pending with at least two member packages, moves
// to Processing when the warehouse begins repacking, and ends Completed with
// the repacked measurements and a link to the synthesized resulting package.
// Pending requests can be cancelled by the customer; Processing ones only by
// an admin. Completed and Cancelled are terminal.
//
// Reconciliation can synthesize a single-member consolidation directly in
// Processing when an admin forces a package into consolidated status with no
// request to link to.
package consolidation
