package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrReconcilePackageCommandIsNotConstructed = errors.New(
	"ReconcilePackageCommand must be created via NewReconcilePackageCommand constructor",
)

// ReconcilePackageCommand represents a request to repair a package left in
// consolidated status without a consolidation link, typically after an admin
// status edit.
type ReconcilePackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReconcilePackageCommand creates a reconciliation command.
func NewReconcilePackageCommand(packageID kernel.UUID) (ReconcilePackageCommand, error) {
	cmd := ReconcilePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPackageID(packageID); err != nil {
		return ReconcilePackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePackageCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePackageCommandIsNotConstructed)
}

// PackageID returns the package to reconcile.
func (c ReconcilePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c *ReconcilePackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}
