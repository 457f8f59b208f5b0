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
	"parceltrack/internal/pkg/errs"
)

func TestRegisterParcelCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	gate := services.NewAccessGate()

	t.Run("registers a parcel owned by the caller", func(t *testing.T) {
		caller := driverCaller()
		cmd, err := commands.NewRegisterParcelCommand(
			kernel.NewUUID(), caller, validParty(t, "Sender"), validParty(t, "Receiver"), validItems(t),
		)
		require.NoError(t, err)

		repo := new(MockParcelRepository)
		repo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()

		h := commands.NewRegisterParcelCommandHandler(gate, repo)
		registered, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, registered.OwnerDriverID().IsEqual(caller.ID))
		assert.Equal(t, parcel.StatusRegistered, registered.Status())
		assert.NoError(t, parcel.ValidateReferenceCode(registered.ReferenceCode()))
		repo.AssertExpectations(t)
	})

	t.Run("officials cannot register parcels", func(t *testing.T) {
		cmd, err := commands.NewRegisterParcelCommand(
			kernel.NewUUID(), officialCaller(), validParty(t, "Sender"), validParty(t, "Receiver"), validItems(t),
		)
		require.NoError(t, err)

		repo := new(MockParcelRepository)

		h := commands.NewRegisterParcelCommandHandler(gate, repo)
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("unconstructed command never reaches the repository", func(t *testing.T) {
		repo := new(MockParcelRepository)

		h := commands.NewRegisterParcelCommandHandler(gate, repo)
		_, err := h.Handle(ctx, commands.RegisterParcelCommand{})

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrRegisterParcelCommandIsNotConstructed)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("repository failure surfaces to the caller", func(t *testing.T) {
		cmd, err := commands.NewRegisterParcelCommand(
			kernel.NewUUID(), driverCaller(), validParty(t, "Sender"), validParty(t, "Receiver"), validItems(t),
		)
		require.NoError(t, err)

		repo := new(MockParcelRepository)
		storeErr := errs.NewStorageError("set parcel", nil)
		repo.On("Add", mock.Anything, mock.Anything).Return(storeErr).Once()

		h := commands.NewRegisterParcelCommandHandler(gate, repo)
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStorageFailed)
		repo.AssertExpectations(t)
	})
}
