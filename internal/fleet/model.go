package fleet

import (
	"time"

	"github.com/google/uuid"
)

// VehicleStatus mirrors the statuses the fleet screen offers.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "Available"
	VehicleInTransit   VehicleStatus = "In Transit"
	VehicleMaintenance VehicleStatus = "Maintenance"
)

// Vehicle is a fleet truck managed on the dashboard.
type Vehicle struct {
	ID              uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	VehicleNumber   string        `json:"vehicleNumber" gorm:"uniqueIndex" validate:"required"`
	Type            string        `json:"type" validate:"required"`
	Status          VehicleStatus `json:"status"`
	CurrentLocation string        `json:"currentLocation"`
	LastMaintenance *time.Time    `json:"lastMaintenance,omitempty"`
	Capacity        string        `json:"capacity"`
	Driver          string        `json:"driver"`
	LicensePlate    string        `json:"licensePlate"`
	Model           string        `json:"model"`
	Year            int           `json:"year"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (Vehicle) TableName() string {
	return "fleet_vehicles"
}
