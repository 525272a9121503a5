package services

import (
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// OwnershipGuard is a domain service that enforces per-customer isolation:
// a customer may act only on entities they own, while admins bypass the
// check. Every customer-facing operation asserts ownership after loading
// the entity and before mutating anything.
type OwnershipGuard struct{}

// NewOwnershipGuard creates a new OwnershipGuard instance.
func NewOwnershipGuard() OwnershipGuard {
	return OwnershipGuard{}
}

// AssertOwner returns a forbidden error unless the actor owns the entity or
// is an admin.
func (g OwnershipGuard) AssertOwner(
	entityName string,
	entityID kernel.UUID,
	owner kernel.OwnerRef,
	actorID kernel.UUID,
	isAdmin bool,
) error {
	if isAdmin {
		return nil
	}
	if owner.ID().IsEqual(actorID) {
		return nil
	}
	return errs.NewForbiddenError(entityName, entityID.String(), actorID.String())
}
