package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrCancelConsolidationCommandIsNotConstructed = errors.New(
	"CancelConsolidationCommand must be created via NewCancelConsolidationCommand constructor",
)

// CancelConsolidationCommand represents a request to withdraw a
// consolidation and release its member packages.
type CancelConsolidationCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	actorID         kernel.UUID
	isAdmin         bool

	guard guard.ConstructorGuard
}

// NewCancelConsolidationCommand creates a cancellation command.
func NewCancelConsolidationCommand(consolidationID, actorID kernel.UUID, isAdmin bool) (CancelConsolidationCommand, error) {
	cmd := CancelConsolidationCommand{
		isAdmin: isAdmin,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsolidationID(consolidationID),
		cmd.setActorID(actorID),
	); err != nil {
		return CancelConsolidationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrCancelConsolidationCommandIsNotConstructed)
}

// ConsolidationID returns the consolidation to cancel.
func (c CancelConsolidationCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// ActorID returns the acting user's identifier.
func (c CancelConsolidationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// IsAdmin reports whether the actor has admin privileges.
func (c CancelConsolidationCommand) IsAdmin() bool {
	return c.isAdmin
}

func (c *CancelConsolidationCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}

func (c *CancelConsolidationCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
