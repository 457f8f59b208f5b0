package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

func TestUpdateParcelStatusCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	gate := services.NewAccessGate()

	t.Run("owning driver moves the parcel forward", func(t *testing.T) {
		caller := driverCaller()
		target := storedParcel(t, caller.ID)
		cmd, err := commands.NewUpdateParcelStatusCommand(target.ID(), caller, parcel.StatusInTransit)
		require.NoError(t, err)

		repo := new(MockParcelRepository)
		mock.InOrder(
			repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
			repo.On("Update", mock.Anything, target).Return(nil).Once(),
		)

		h := commands.NewUpdateParcelStatusCommandHandler(gate, repo)
		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusInTransit, updated.Status())
		repo.AssertExpectations(t)
	})

	t.Run("official may update any parcel", func(t *testing.T) {
		target := storedParcel(t, kernel.NewUUID())
		cmd, err := commands.NewUpdateParcelStatusCommand(target.ID(), officialCaller(), parcel.StatusDelivered)
		require.NoError(t, err)

		repo := new(MockParcelRepository)
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()
		repo.On("Update", mock.Anything, target).Return(nil).Once()

		h := commands.NewUpdateParcelStatusCommandHandler(gate, repo)
		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusDelivered, updated.Status())
		repo.AssertExpectations(t)
	})

	t.Run("foreign driver is denied and nothing is written", func(t *testing.T) {
		target := storedParcel(t, kernel.NewUUID())
		cmd, err := commands.NewUpdateParcelStatusCommand(target.ID(), driverCaller(), parcel.StatusInTransit)
		require.NoError(t, err)

		repo := new(MockParcelRepository)
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()

		h := commands.NewUpdateParcelStatusCommandHandler(gate, repo)
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, parcel.StatusRegistered, target.Status())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("backward transition is rejected and nothing is written", func(t *testing.T) {
		caller := driverCaller()
		target := storedParcel(t, caller.ID)
		require.NoError(t, target.ChangeStatus(parcel.StatusDelivered))

		cmd, err := commands.NewUpdateParcelStatusCommand(target.ID(), caller, parcel.StatusInTransit)
		require.NoError(t, err)

		repo := new(MockParcelRepository)
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()

		h := commands.NewUpdateParcelStatusCommandHandler(gate, repo)
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, parcel.StatusDelivered, target.Status())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown parcel is not found", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewUpdateParcelStatusCommand(id, officialCaller(), parcel.StatusInTransit)
		require.NoError(t, err)

		repo := new(MockParcelRepository)
		repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("parcelID", id)).Once()

		h := commands.NewUpdateParcelStatusCommandHandler(gate, repo)
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRebuildIndexesCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the repository's report", func(t *testing.T) {
		repo := new(MockParcelRepository)
		report := ports.IndexRebuildReport{ParcelsScanned: 7, ReferenceIndexes: 7, DriverListsBuilt: 3}
		repo.On("RebuildIndexes", mock.Anything).Return(report, nil).Once()

		h := commands.NewRebuildIndexesCommandHandler(repo)
		got, err := h.Handle(ctx, commands.NewRebuildIndexesCommand())

		require.NoError(t, err)
		assert.Equal(t, report, got)
		repo.AssertExpectations(t)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		repo := new(MockParcelRepository)

		h := commands.NewRebuildIndexesCommandHandler(repo)
		_, err := h.Handle(ctx, commands.RebuildIndexesCommand{})

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrRebuildIndexesCommandIsNotConstructed)
		repo.AssertNotCalled(t, "RebuildIndexes", mock.Anything)
	})
}
