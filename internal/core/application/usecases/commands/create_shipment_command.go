package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a customer request to ship one or more of
// their packages to an international destination.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.UUID
	actorID      kernel.UUID
	packageIDs   []kernel.UUID
	carrier      string
	serviceLevel string
	destination  shipment.Destination
	customs      shipment.CustomsInfo

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a shipment request command.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	actorID kernel.UUID,
	packageIDs []kernel.UUID,
	carrier string,
	serviceLevel string,
	destination shipment.Destination,
	customs shipment.CustomsInfo,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		serviceLevel: serviceLevel,
		customs:      customs,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setActorID(actorID),
		cmd.setPackageIDs(packageIDs),
		cmd.setCarrier(carrier),
		cmd.setDestination(destination),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier assigned to the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ActorID returns the requesting customer's identifier.
func (c CreateShipmentCommand) ActorID() kernel.UUID {
	return c.actorID
}

// PackageIDs returns the packages to ship.
func (c CreateShipmentCommand) PackageIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.packageIDs...)
}

// Carrier returns the requested carrier code.
func (c CreateShipmentCommand) Carrier() string {
	return c.carrier
}

// ServiceLevel returns the requested carrier service level.
func (c CreateShipmentCommand) ServiceLevel() string {
	return c.serviceLevel
}

// Destination returns the delivery address.
func (c CreateShipmentCommand) Destination() shipment.Destination {
	return c.destination
}

// Customs returns the customs declaration.
func (c CreateShipmentCommand) Customs() shipment.CustomsInfo {
	return c.customs
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CreateShipmentCommand) setPackageIDs(packageIDs []kernel.UUID) error {
	if len(packageIDs) == 0 {
		return errs.NewValueIsRequiredError("packageIds")
	}
	for _, id := range packageIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.packageIDs = append([]kernel.UUID(nil), packageIDs...)
	return nil
}

func (c *CreateShipmentCommand) setCarrier(carrier string) error {
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}

	c.carrier = carrier
	return nil
}

func (c *CreateShipmentCommand) setDestination(destination shipment.Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}
