package fleet

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

// Repository is the persistence surface the fleet service depends on.
type Repository interface {
	List(ctx context.Context) ([]Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	Create(ctx context.Context, v *Vehicle) error
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	db *database.DB
}

func NewRepository(db *database.DB) Repository {
	return &postgresRepository{db: db}
}

// Migrate creates the vehicles table.
func Migrate(db *database.DB) error {
	return db.DB.AutoMigrate(&Vehicle{})
}

func (r *postgresRepository) List(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := r.db.DB.WithContext(ctx).Order("vehicle_number").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	var vehicle Vehicle
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *postgresRepository) Create(ctx context.Context, v *Vehicle) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	v.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, v *Vehicle) error {
	v.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&Vehicle{}).
		Where("id = ?", v.ID).
		Updates(map[string]interface{}{
			"vehicle_number":   v.VehicleNumber,
			"type":             v.Type,
			"status":           string(v.Status),
			"current_location": v.CurrentLocation,
			"last_maintenance": v.LastMaintenance,
			"capacity":         v.Capacity,
			"driver":           v.Driver,
			"license_plate":    v.LicensePlate,
			"model":            v.Model,
			"year":             v.Year,
			"updated_at":       v.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrVehicleNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Where("id = ?", id).Delete(&Vehicle{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrVehicleNotFound
	}
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&Vehicle{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return count, nil
}
