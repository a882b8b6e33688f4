package cargotype

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cargo-tracker/internal/database"
	appErrors "cargo-tracker/pkg/errors"
)

// Repository is the persistence surface the cargo type service depends on.
type Repository interface {
	List(ctx context.Context) ([]CargoType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CargoType, error)
	Create(ctx context.Context, ct *CargoType) error
	Update(ctx context.Context, ct *CargoType) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	db *database.DB
}

func NewRepository(db *database.DB) Repository {
	return &postgresRepository{db: db}
}

// Migrate creates the cargo types table.
func Migrate(db *database.DB) error {
	return db.DB.AutoMigrate(&CargoType{})
}

func (r *postgresRepository) List(ctx context.Context) ([]CargoType, error) {
	var types []CargoType
	if err := r.db.DB.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list cargo types: %w", err)
	}
	return types, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*CargoType, error) {
	var ct CargoType
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&ct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrCargoTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cargo type: %w", err)
	}
	return &ct, nil
}

func (r *postgresRepository) Create(ctx context.Context, ct *CargoType) error {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	ct.CreatedAt = time.Now()
	ct.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(ct).Error; err != nil {
		return fmt.Errorf("failed to create cargo type: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, ct *CargoType) error {
	ct.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&CargoType{}).
		Where("id = ?", ct.ID).
		Updates(map[string]interface{}{
			"name":                  ct.Name,
			"description":           ct.Description,
			"handling_requirements": ct.HandlingRequirements,
			"special_instructions":  ct.SpecialInstructions,
			"restrictions":          ct.Restrictions,
			"icon":                  ct.Icon,
			"updated_at":            ct.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update cargo type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCargoTypeNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Where("id = ?", id).Delete(&CargoType{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cargo type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCargoTypeNotFound
	}
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&CargoType{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cargo types: %w", err)
	}
	return count, nil
}
