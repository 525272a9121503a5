package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/guard"
)

var ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
	"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
)

// UpdateShipmentStatusCommand represents a carrier scan or admin update of a
// shipment's status, optionally carrying a tracking event.
type UpdateShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	actorID     kernel.UUID
	isAdmin     bool
	newStatus   shipment.Status
	location    string
	description string

	guard guard.ConstructorGuard
}

// NewUpdateShipmentStatusCommand creates a shipment status update command.
func NewUpdateShipmentStatusCommand(
	shipmentID kernel.UUID,
	actorID kernel.UUID,
	isAdmin bool,
	newStatus shipment.Status,
	location string,
	description string,
) (UpdateShipmentStatusCommand, error) {
	cmd := UpdateShipmentStatusCommand{
		isAdmin:     isAdmin,
		location:    location,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setActorID(actorID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

// ShipmentID returns the shipment to update.
func (c UpdateShipmentStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ActorID returns the acting user's identifier.
func (c UpdateShipmentStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// IsAdmin reports whether the actor has admin privileges.
func (c UpdateShipmentStatusCommand) IsAdmin() bool {
	return c.isAdmin
}

// NewStatus returns the status to move to.
func (c UpdateShipmentStatusCommand) NewStatus() shipment.Status {
	return c.newStatus
}

// Location returns the optional tracking event location.
func (c UpdateShipmentStatusCommand) Location() string {
	return c.location
}

// Description returns the optional tracking event description.
func (c UpdateShipmentStatusCommand) Description() string {
	return c.description
}

func (c *UpdateShipmentStatusCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateShipmentStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateShipmentStatusCommand) setNewStatus(newStatus shipment.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}
