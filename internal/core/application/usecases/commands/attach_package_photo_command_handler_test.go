package commands_test

import (
	"testing"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validAttachPhotoCommand(t *testing.T, packageID kernel.UUID, isAdmin bool) commands.AttachPackagePhotoCommand {
	t.Helper()

	cmd, err := commands.NewAttachPackagePhotoCommand(packageID, kernel.NewUUID(), isAdmin,
		"https://cdn.example.com/photos/p1.jpg", kernel.PhotoTypeIntake, time.Now())
	require.NoError(t, err)
	return cmd
}

func TestNewAttachPackagePhotoCommand_RequiresURL(t *testing.T) {
	_, err := commands.NewAttachPackagePhotoCommand(kernel.NewUUID(), kernel.NewUUID(), true,
		"", kernel.PhotoTypeIntake, time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAttachPackagePhotoCommandHandler_Handle_RequiresAdmin(t *testing.T) {
	ctx := t.Context()
	cmd := validAttachPhotoCommand(t, kernel.NewUUID(), false)

	factory := new(MockPackageUoWFactory)

	h := commands.NewAttachPackagePhotoCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestAttachPackagePhotoCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	aggregate := receivedPackage(t, ownerID, 2)
	cmd := validAttachPhotoCommand(t, aggregate.ID(), true)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)
	uow.On("PackageRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachPackagePhotoCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, aggregate.Photos(), 1)
	require.Equal(t, "https://cdn.example.com/photos/p1.jpg", aggregate.Photos()[0].URL())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAttachPackagePhotoCommandHandler_Handle_PackageNotFound(t *testing.T) {
	ctx := t.Context()
	cmd := validAttachPhotoCommand(t, kernel.NewUUID(), true)

	repo := new(MockPackageRepository)
	repo.On("Get", mock.Anything, cmd.PackageID()).
		Return(nil, errs.NewObjectNotFoundError("package", cmd.PackageID().String())).Once()
	uow := new(MockPackageUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("PackageRepository").Return(repo)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachPackagePhotoCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
