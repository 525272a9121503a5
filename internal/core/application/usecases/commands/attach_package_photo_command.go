package commands

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrAttachPackagePhotoCommandIsNotConstructed = errors.New(
		"AttachPackagePhotoCommand must be created via NewAttachPackagePhotoCommand constructor",
	)
)

// AttachPackagePhotoCommand records a warehouse photo against a package.
// Warehouse staff operation: the actor must be an admin.
type AttachPackagePhotoCommand struct {
	packageID kernel.UUID
	actorID   kernel.UUID
	isAdmin   bool
	photo     kernel.PhotoRef

	guard guard.ConstructorGuard
}

// NewAttachPackagePhotoCommand creates a command to attach one stored photo.
func NewAttachPackagePhotoCommand(
	packageID kernel.UUID,
	actorID kernel.UUID,
	isAdmin bool,
	url string,
	photoType kernel.PhotoType,
	uploadedAt time.Time,
) (AttachPackagePhotoCommand, error) {
	photo, err := kernel.NewPhotoRef(url, photoType, uploadedAt)
	if err != nil {
		return AttachPackagePhotoCommand{}, err
	}

	cmd := AttachPackagePhotoCommand{
		isAdmin: isAdmin,
		photo:   photo,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setActorID(actorID),
	); err != nil {
		return AttachPackagePhotoCommand{}, err
	}

	return cmd, nil
}

// PackageID returns the package the photo belongs to.
func (c AttachPackagePhotoCommand) PackageID() kernel.UUID {
	return c.packageID
}

// ActorID returns the user performing the operation.
func (c AttachPackagePhotoCommand) ActorID() kernel.UUID {
	return c.actorID
}

// IsAdmin reports whether the actor has admin privileges.
func (c AttachPackagePhotoCommand) IsAdmin() bool {
	return c.isAdmin
}

// Photo returns the photo reference to attach.
func (c AttachPackagePhotoCommand) Photo() kernel.PhotoRef {
	return c.photo
}

// Validate ensures the command was created through the constructor.
// Returns ErrAttachPackagePhotoCommandIsNotConstructed if validation fails.
func (c AttachPackagePhotoCommand) Validate() error {
	return c.guard.Validate(ErrAttachPackagePhotoCommandIsNotConstructed)
}

func (c *AttachPackagePhotoCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	c.packageID = packageID
	return nil
}

func (c *AttachPackagePhotoCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
