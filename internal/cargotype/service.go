package cargotype

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargo-tracker/internal/logger"
	appErrors "cargo-tracker/pkg/errors"
	"cargo-tracker/pkg/utils"
)

// Service implements the cargo type catalog use cases.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]CargoType, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CargoType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, ct *CargoType) (*CargoType, error) {
	if err := utils.ValidateStruct(ct); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	s.sanitize(ct)

	if err := s.repo.Create(ctx, ct); err != nil {
		return nil, err
	}

	logger.Info("Cargo type created",
		zap.String("cargo_type_id", ct.ID.String()),
		zap.String("name", ct.Name),
	)
	return ct, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, ct *CargoType) (*CargoType, error) {
	if err := utils.ValidateStruct(ct); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	s.sanitize(ct)
	ct.ID = id

	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) sanitize(ct *CargoType) {
	ct.Name = utils.SanitizeString(ct.Name)
	ct.Description = utils.SanitizeString(ct.Description)
	ct.HandlingRequirements = utils.SanitizeString(ct.HandlingRequirements)
	ct.SpecialInstructions = utils.SanitizeString(ct.SpecialInstructions)
	ct.Restrictions = utils.SanitizeString(ct.Restrictions)
}

// Seed loads the built-in catalog into an empty table.
func (s *Service) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []CargoType{
		{
			Name:                 "Electronics",
			Description:          "Electronic devices and components",
			HandlingRequirements: "Temperature controlled, Fragile",
			SpecialInstructions:  "Handle with care, Keep dry",
			Restrictions:         "No stacking",
			Icon:                 "📱",
		},
		{
			Name:                 "Perishable Goods",
			Description:          "Food items and other perishable products",
			HandlingRequirements: "Temperature controlled, Time-sensitive",
			SpecialInstructions:  "Maintain temperature between 2-8°C",
			Restrictions:         "No delays allowed",
			Icon:                 "🥗",
		},
		{
			Name:                 "Hazardous Materials",
			Description:          "Dangerous goods requiring special handling",
			HandlingRequirements: "Special permits required, Safety equipment needed",
			SpecialInstructions:  "Follow IATA/IMO regulations strictly",
			Restrictions:         "Multiple restrictions apply",
			Icon:                 "⚠️",
		},
		{
			Name:                 "General Cargo",
			Description:          "Standard non-hazardous goods",
			HandlingRequirements: "Standard handling",
			SpecialInstructions:  "None",
			Restrictions:         "None",
			Icon:                 "📦",
		},
	}

	for i := range seed {
		if err := s.repo.Create(ctx, &seed[i]); err != nil {
			return err
		}
	}
	logger.Info("Seeded cargo types", zap.Int("count", len(seed)))
	return nil
}
