package commands

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrCreateConsolidationCommandIsNotConstructed = errors.New(
	"CreateConsolidationCommand must be created via NewCreateConsolidationCommand constructor",
)

// CreateConsolidationCommand represents a customer request to merge two or
// more of their received packages into one.
type CreateConsolidationCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	actorID         kernel.UUID
	packageIDs      []kernel.UUID
	preferences     consolidation.Preferences
	instructions    string

	guard guard.ConstructorGuard
}

// NewCreateConsolidationCommand creates a consolidation request command.
// At least two distinct package ids are required.
func NewCreateConsolidationCommand(
	consolidationID kernel.UUID,
	actorID kernel.UUID,
	packageIDs []kernel.UUID,
	preferences consolidation.Preferences,
	instructions string,
) (CreateConsolidationCommand, error) {
	cmd := CreateConsolidationCommand{
		preferences:  preferences,
		instructions: instructions,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsolidationID(consolidationID),
		cmd.setActorID(actorID),
		cmd.setPackageIDs(packageIDs),
	); err != nil {
		return CreateConsolidationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrCreateConsolidationCommandIsNotConstructed)
}

// ConsolidationID returns the identifier assigned to the new consolidation.
func (c CreateConsolidationCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// ActorID returns the requesting customer's identifier.
func (c CreateConsolidationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// PackageIDs returns the requested member package ids.
func (c CreateConsolidationCommand) PackageIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.packageIDs...)
}

// Preferences returns the repacking options.
func (c CreateConsolidationCommand) Preferences() consolidation.Preferences {
	return c.preferences
}

// Instructions returns the customer's special instructions.
func (c CreateConsolidationCommand) Instructions() string {
	return c.instructions
}

func (c *CreateConsolidationCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}

func (c *CreateConsolidationCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CreateConsolidationCommand) setPackageIDs(packageIDs []kernel.UUID) error {
	if len(packageIDs) < consolidation.MinPackages {
		return errs.NewValueIsInvalidErrorWithCause("packageIds",
			fmt.Errorf("at least %d packages are required", consolidation.MinPackages))
	}
	seen := make(map[kernel.UUID]struct{}, len(packageIDs))
	for _, id := range packageIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return errs.NewValueIsInvalidErrorWithCause("packageIds",
				fmt.Errorf("package %s is listed twice", id))
		}
		seen[id] = struct{}{}
	}

	c.packageIDs = append([]kernel.UUID(nil), packageIDs...)
	return nil
}
