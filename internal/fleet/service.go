package fleet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargo-tracker/internal/logger"
	appErrors "cargo-tracker/pkg/errors"
	"cargo-tracker/pkg/utils"
)

// Service implements the fleet management use cases.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, v *Vehicle) (*Vehicle, error) {
	if err := utils.ValidateStruct(v); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	s.sanitize(v)
	if v.Status == "" {
		v.Status = VehicleAvailable
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	logger.Info("Vehicle added to fleet",
		zap.String("vehicle_id", v.ID.String()),
		zap.String("vehicle_number", v.VehicleNumber),
	)
	return v, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, v *Vehicle) (*Vehicle, error) {
	if err := utils.ValidateStruct(v); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	s.sanitize(v)
	v.ID = id

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) sanitize(v *Vehicle) {
	v.VehicleNumber = utils.SanitizeString(v.VehicleNumber)
	v.Type = utils.SanitizeString(v.Type)
	v.CurrentLocation = utils.SanitizeString(v.CurrentLocation)
	v.Capacity = utils.SanitizeString(v.Capacity)
	v.Driver = utils.SanitizeString(v.Driver)
	v.LicensePlate = utils.SanitizeString(v.LicensePlate)
	v.Model = utils.SanitizeString(v.Model)
}

// Seed loads the built-in demo fleet into an empty table.
func (s *Service) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	maint1 := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	maint2 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []Vehicle{
		{
			VehicleNumber:   "TRK-001",
			Type:            "Semi-Truck",
			Status:          VehicleAvailable,
			CurrentLocation: "New York",
			LastMaintenance: &maint1,
			Capacity:        "20 tons",
			Driver:          "John Doe",
			LicensePlate:    "NY-1234",
			Model:           "Volvo FH16",
			Year:            2022,
		},
		{
			VehicleNumber:   "TRK-002",
			Type:            "Container Truck",
			Status:          VehicleInTransit,
			CurrentLocation: "Los Angeles",
			LastMaintenance: &maint2,
			Capacity:        "40 tons",
			Driver:          "Jane Smith",
			LicensePlate:    "CA-5678",
			Model:           "Scania R500",
			Year:            2023,
		},
	}

	for i := range seed {
		if err := s.repo.Create(ctx, &seed[i]); err != nil {
			return err
		}
	}
	logger.Info("Seeded fleet vehicles", zap.Int("count", len(seed)))
	return nil
}
