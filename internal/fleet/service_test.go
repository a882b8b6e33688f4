package fleet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "cargo-tracker/pkg/errors"
)

// memoryRepository is an in-memory Repository for service tests.
type memoryRepository struct {
	vehicles map[uuid.UUID]Vehicle
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{vehicles: map[uuid.UUID]Vehicle{}}
}

func (r *memoryRepository) List(ctx context.Context) ([]Vehicle, error) {
	out := make([]Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, appErrors.ErrVehicleNotFound
	}
	return &v, nil
}

func (r *memoryRepository) Create(ctx context.Context, v *Vehicle) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vehicles[v.ID] = *v
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, v *Vehicle) error {
	if _, ok := r.vehicles[v.ID]; !ok {
		return appErrors.ErrVehicleNotFound
	}
	r.vehicles[v.ID] = *v
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.vehicles[id]; !ok {
		return appErrors.ErrVehicleNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *memoryRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.vehicles)), nil
}

func TestCreateVehicleDefaultsStatus(t *testing.T) {
	svc := NewService(newMemoryRepository())

	created, err := svc.Create(context.Background(), &Vehicle{
		VehicleNumber: "TRK-100",
		Type:          "Semi-Truck",
	})
	require.NoError(t, err)
	assert.Equal(t, VehicleAvailable, created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateVehicleRejectsMissingFields(t *testing.T) {
	svc := NewService(newMemoryRepository())

	_, err := svc.Create(context.Background(), &Vehicle{Type: "Semi-Truck"})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateVehicleSanitizesInput(t *testing.T) {
	svc := NewService(newMemoryRepository())

	created, err := svc.Create(context.Background(), &Vehicle{
		VehicleNumber: "  TRK-100  ",
		Type:          "Semi-Truck",
		Driver:        "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.Equal(t, "TRK-100", created.VehicleNumber)
	assert.NotContains(t, created.Driver, "<script>")
}

func TestUpdateVehicle(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &Vehicle{
		VehicleNumber: "TRK-100",
		Type:          "Semi-Truck",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &Vehicle{
		VehicleNumber: "TRK-100",
		Type:          "Semi-Truck",
		Status:        VehicleMaintenance,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, VehicleMaintenance, updated.Status)
}

func TestUpdateUnknownVehicle(t *testing.T) {
	svc := NewService(newMemoryRepository())

	_, err := svc.Update(context.Background(), uuid.New(), &Vehicle{
		VehicleNumber: "TRK-100",
		Type:          "Semi-Truck",
	})
	assert.ErrorIs(t, err, appErrors.ErrVehicleNotFound)
}

func TestDeleteVehicle(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &Vehicle{
		VehicleNumber: "TRK-100",
		Type:          "Semi-Truck",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), appErrors.ErrVehicleNotFound)
}

func TestSeedOnlyOnEmptyTable(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	require.NoError(t, svc.Seed(context.Background()))
	vehicles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 2)

	numbers := map[string]bool{}
	for _, v := range vehicles {
		numbers[v.VehicleNumber] = true
	}
	assert.True(t, numbers["TRK-001"])
	assert.True(t, numbers["TRK-002"])

	// A second seed against a populated table is a no-op.
	require.NoError(t, svc.Seed(context.Background()))
	vehicles, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)
}
