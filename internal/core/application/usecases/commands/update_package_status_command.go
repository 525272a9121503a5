package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/pkg/guard"
)

var ErrUpdatePackageStatusCommandIsNotConstructed = errors.New(
	"UpdatePackageStatusCommand must be created via NewUpdatePackageStatusCommand constructor",
)

// UpdatePackageStatusCommand represents an admin override of a package's
// status, bypassing the normal transition rules.
type UpdatePackageStatusCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	actorID   kernel.UUID
	isAdmin   bool
	newStatus pack.Status
	notes     string

	guard guard.ConstructorGuard
}

// NewUpdatePackageStatusCommand creates an admin status edit command.
func NewUpdatePackageStatusCommand(
	packageID kernel.UUID,
	actorID kernel.UUID,
	isAdmin bool,
	newStatus pack.Status,
	notes string,
) (UpdatePackageStatusCommand, error) {
	cmd := UpdatePackageStatusCommand{
		isAdmin: isAdmin,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setActorID(actorID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdatePackageStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePackageStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackageStatusCommandIsNotConstructed)
}

// PackageID returns the package to edit.
func (c UpdatePackageStatusCommand) PackageID() kernel.UUID {
	return c.packageID
}

// ActorID returns the acting user's identifier.
func (c UpdatePackageStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// IsAdmin reports whether the actor has admin privileges.
func (c UpdatePackageStatusCommand) IsAdmin() bool {
	return c.isAdmin
}

// NewStatus returns the status to force.
func (c UpdatePackageStatusCommand) NewStatus() pack.Status {
	return c.newStatus
}

// Notes returns the optional note appended to the package.
func (c UpdatePackageStatusCommand) Notes() string {
	return c.notes
}

func (c *UpdatePackageStatusCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *UpdatePackageStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *UpdatePackageStatusCommand) setNewStatus(newStatus pack.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}
