package commands

import (
	"context"

	"forwarding/internal/pkg/errs"
)

// AttachPackagePhotoCommandHandler records warehouse photos on packages.
// The photo object is already in the store when this runs; the handler only
// links it to the aggregate.
type AttachPackagePhotoCommandHandler struct {
	uowFactory PackageUoWFactory
}

// NewAttachPackagePhotoCommandHandler creates a handler for photo attachment.
func NewAttachPackagePhotoCommandHandler(uowFactory PackageUoWFactory) AttachPackagePhotoCommandHandler {
	return AttachPackagePhotoCommandHandler{uowFactory: uowFactory}
}

// Handle processes the photo attachment.
func (h *AttachPackagePhotoCommandHandler) Handle(ctx context.Context, cmd AttachPackagePhotoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.IsAdmin() {
		return errs.NewForbiddenError("package", cmd.PackageID().String(), cmd.ActorID().String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	aggregate, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	aggregate.AttachPhoto(cmd.Photo())

	if err = packageRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
