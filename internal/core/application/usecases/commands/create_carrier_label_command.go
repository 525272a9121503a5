package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrCreateCarrierLabelCommandIsNotConstructed = errors.New(
	"CreateCarrierLabelCommand must be created via NewCreateCarrierLabelCommand constructor",
)

// CreateCarrierLabelCommand represents a request to purchase a carrier
// shipping label for an existing shipment.
type CreateCarrierLabelCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	actorID    kernel.UUID
	isAdmin    bool

	guard guard.ConstructorGuard
}

// NewCreateCarrierLabelCommand creates a label purchase command.
func NewCreateCarrierLabelCommand(shipmentID, actorID kernel.UUID, isAdmin bool) (CreateCarrierLabelCommand, error) {
	cmd := CreateCarrierLabelCommand{
		isAdmin: isAdmin,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateCarrierLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCarrierLabelCommand) Validate() error {
	return c.guard.Validate(ErrCreateCarrierLabelCommandIsNotConstructed)
}

// ShipmentID returns the shipment needing a label.
func (c CreateCarrierLabelCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ActorID returns the acting user's identifier.
func (c CreateCarrierLabelCommand) ActorID() kernel.UUID {
	return c.actorID
}

// IsAdmin reports whether the actor has admin privileges.
func (c CreateCarrierLabelCommand) IsAdmin() bool {
	return c.isAdmin
}

func (c *CreateCarrierLabelCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateCarrierLabelCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
