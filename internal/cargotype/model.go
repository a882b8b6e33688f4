package cargotype

import (
	"time"

	"github.com/google/uuid"
)

// CargoType is a catalog entry describing how a class of cargo is handled.
type CargoType struct {
	ID                   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name                 string    `json:"name" gorm:"uniqueIndex" validate:"required"`
	Description          string    `json:"description"`
	HandlingRequirements string    `json:"handlingRequirements"`
	SpecialInstructions  string    `json:"specialInstructions"`
	Restrictions         string    `json:"restrictions"`
	Icon                 string    `json:"icon"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (CargoType) TableName() string {
	return "cargo_types"
}
