package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrCompleteConsolidationCommandIsNotConstructed = errors.New(
	"CompleteConsolidationCommand must be created via NewCompleteConsolidationCommand constructor",
)

// CompleteConsolidationCommand represents the warehouse finishing a
// consolidation: the repacked box is weighed and measured and a new package
// replaces the members.
type CompleteConsolidationCommand struct { //nolint:recvcheck //using for validation
	consolidationID    kernel.UUID
	resultingPackageID kernel.UUID
	actorID            kernel.UUID
	isAdmin            bool
	resultWeight       kernel.Weight
	resultDimensions   kernel.Dimensions
	notes              string

	guard guard.ConstructorGuard
}

// NewCompleteConsolidationCommand creates a command to finish a consolidation.
// The caller assigns the identifier of the resulting package.
func NewCompleteConsolidationCommand(
	consolidationID kernel.UUID,
	resultingPackageID kernel.UUID,
	actorID kernel.UUID,
	isAdmin bool,
	resultWeight kernel.Weight,
	resultDimensions kernel.Dimensions,
	notes string,
) (CompleteConsolidationCommand, error) {
	cmd := CompleteConsolidationCommand{
		isAdmin: isAdmin,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsolidationID(consolidationID),
		cmd.setResultingPackageID(resultingPackageID),
		cmd.setActorID(actorID),
		cmd.setResultWeight(resultWeight),
		cmd.setResultDimensions(resultDimensions),
	); err != nil {
		return CompleteConsolidationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrCompleteConsolidationCommandIsNotConstructed)
}

// ConsolidationID returns the consolidation to complete.
func (c CompleteConsolidationCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// ResultingPackageID returns the identifier assigned to the synthesized package.
func (c CompleteConsolidationCommand) ResultingPackageID() kernel.UUID {
	return c.resultingPackageID
}

// ActorID returns the acting user's identifier.
func (c CompleteConsolidationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// IsAdmin reports whether the actor has admin privileges.
func (c CompleteConsolidationCommand) IsAdmin() bool {
	return c.isAdmin
}

// ResultWeight returns the measured weight of the repacked box.
func (c CompleteConsolidationCommand) ResultWeight() kernel.Weight {
	return c.resultWeight
}

// ResultDimensions returns the measured dimensions of the repacked box.
func (c CompleteConsolidationCommand) ResultDimensions() kernel.Dimensions {
	return c.resultDimensions
}

// Notes returns warehouse notes recorded at completion.
func (c CompleteConsolidationCommand) Notes() string {
	return c.notes
}

func (c *CompleteConsolidationCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}

func (c *CompleteConsolidationCommand) setResultingPackageID(resultingPackageID kernel.UUID) error {
	if err := resultingPackageID.Validate(); err != nil {
		return err
	}

	c.resultingPackageID = resultingPackageID
	return nil
}

func (c *CompleteConsolidationCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CompleteConsolidationCommand) setResultWeight(resultWeight kernel.Weight) error {
	if err := resultWeight.Validate(); err != nil {
		return err
	}

	c.resultWeight = resultWeight
	return nil
}

func (c *CompleteConsolidationCommand) setResultDimensions(resultDimensions kernel.Dimensions) error {
	if err := resultDimensions.Validate(); err != nil {
		return err
	}

	c.resultDimensions = resultDimensions
	return nil
}
