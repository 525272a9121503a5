package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrReceivePackageCommandIsNotConstructed = errors.New(
	"ReceivePackageCommand must be created via NewReceivePackageCommand constructor",
)

// ReceivePackageCommand represents a warehouse intake of an inbound package:
// the package is scanned, weighed, measured and registered against the
// customer it belongs to.
type ReceivePackageCommand struct { //nolint:recvcheck //using for validation
	packageID      kernel.UUID
	ownerID        kernel.UUID
	trackingNumber string
	retailer       string
	description    string
	weight         kernel.Weight
	dimensions     kernel.Dimensions
	estimatedValue kernel.Money

	guard guard.ConstructorGuard
}

// NewReceivePackageCommand creates a command to register an inbound package.
func NewReceivePackageCommand(
	packageID kernel.UUID,
	ownerID kernel.UUID,
	trackingNumber string,
	retailer string,
	description string,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	estimatedValue kernel.Money,
) (ReceivePackageCommand, error) {
	cmd := ReceivePackageCommand{
		retailer:       retailer,
		description:    description,
		estimatedValue: estimatedValue,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setOwnerID(ownerID),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setWeight(weight),
		cmd.setDimensions(dimensions),
	); err != nil {
		return ReceivePackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceivePackageCommand) Validate() error {
	return c.guard.Validate(ErrReceivePackageCommandIsNotConstructed)
}

// PackageID returns the identifier assigned to the new package.
func (c ReceivePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// OwnerID returns the owning customer's identifier.
func (c ReceivePackageCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// TrackingNumber returns the inbound carrier tracking number.
func (c ReceivePackageCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Retailer returns the originating retailer name.
func (c ReceivePackageCommand) Retailer() string {
	return c.retailer
}

// Description returns the declared contents description.
func (c ReceivePackageCommand) Description() string {
	return c.description
}

// Weight returns the measured weight.
func (c ReceivePackageCommand) Weight() kernel.Weight {
	return c.weight
}

// Dimensions returns the measured dimensions.
func (c ReceivePackageCommand) Dimensions() kernel.Dimensions {
	return c.dimensions
}

// EstimatedValue returns the declared value of the contents.
func (c ReceivePackageCommand) EstimatedValue() kernel.Money {
	return c.estimatedValue
}

func (c *ReceivePackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *ReceivePackageCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *ReceivePackageCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *ReceivePackageCommand) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}

	c.weight = weight
	return nil
}

func (c *ReceivePackageCommand) setDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}

	c.dimensions = dimensions
	return nil
}
