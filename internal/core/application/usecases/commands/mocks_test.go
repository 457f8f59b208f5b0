package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByReference(_ context.Context, _ string) (*parcel.Parcel, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockParcelRepository) ListForDriver(_ context.Context, _ kernel.UUID) ([]*parcel.Parcel, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockParcelRepository) ListAll(_ context.Context) ([]*parcel.Parcel, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockParcelRepository) RebuildIndexes(ctx context.Context) (ports.IndexRebuildReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.IndexRebuildReport), args.Error(1)
}

func driverCaller() user.Caller {
	return user.Caller{ID: kernel.NewUUID(), Role: user.RoleDriver}
}

func officialCaller() user.Caller {
	return user.Caller{ID: kernel.NewUUID(), Role: user.RoleOfficial}
}

func validParty(t *testing.T, name string) parcel.Party {
	t.Helper()
	party, err := parcel.NewParty(name, "12 Harbor Lane", "555-0100")
	require.NoError(t, err)
	return party
}

func validItems(t *testing.T) []parcel.Item {
	t.Helper()
	item, err := parcel.NewItem("Ledger", parcel.CategoryDocuments, 50, 0.4)
	require.NoError(t, err)
	return []parcel.Item{item}
}

func storedParcel(t *testing.T, owner kernel.UUID) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		owner,
		validParty(t, "Sender"),
		validParty(t, "Receiver"),
		validItems(t),
	)
	require.NoError(t, err)
	return p
}
