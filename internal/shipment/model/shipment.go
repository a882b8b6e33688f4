package model

import (
	"time"
)

// Status is the lifecycle state of a shipment as reported by the tracking API.
type Status string

const (
	StatusLoading   Status = "Loading"    // Cargo is being loaded at the origin
	StatusInTransit Status = "In Transit" // Actively moving along the route
	StatusDelivered Status = "Delivered"  // Arrived at the destination
	StatusDelayed   Status = "Delayed"    // Behind schedule
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusLoading, StatusInTransit, StatusDelivered, StatusDelayed:
		return true
	}
	return false
}

// WeightUnit is the unit a cargo weight is expressed in.
type WeightUnit string

const (
	UnitKilograms WeightUnit = "kg"
	UnitTons      WeightUnit = "tons"
	UnitPounds    WeightUnit = "lbs"
)

// Coordinate is a WGS84 position. Values are constrained to the valid
// latitude/longitude ranges and to at most six fractional digits; see the
// validator package.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Cargo describes what a container is carrying.
type Cargo struct {
	Type   string     `json:"type" validate:"required"`
	Weight float64    `json:"weight" validate:"gte=0"`
	Unit   WeightUnit `json:"unit" validate:"required"`
}

// Location is a shipment's most recently known position, independent of the
// route stop records.
type Location struct {
	Name        string     `json:"name"`
	Coordinates Coordinate `json:"coordinates"`
	Timestamp   time.Time  `json:"timestamp,omitempty"`
}

// RouteStop is a named geographic point on a shipment's route.
type RouteStop struct {
	Name          string     `json:"name"`
	Coordinates   Coordinate `json:"coordinates"`
	ArrivalTime   *time.Time `json:"arrivalTime,omitempty"`
	DepartureTime *time.Time `json:"departureTime,omitempty"`
}

// Route is an ordered sequence of stops. Ordering is semantically meaningful
// and preserved as received: the first stop is the origin, the last is the
// destination, everything in between is an intermediate stop. There is no
// stored role flag.
type Route []RouteStop

// Origin returns the first stop, or nil for an empty route.
func (r Route) Origin() *RouteStop {
	if len(r) == 0 {
		return nil
	}
	return &r[0]
}

// Destination returns the last stop, or nil for an empty route.
func (r Route) Destination() *RouteStop {
	if len(r) == 0 {
		return nil
	}
	return &r[len(r)-1]
}

// ContainsStop reports whether the route already has a stop with the given name.
func (r Route) ContainsStop(name string) bool {
	for _, stop := range r {
		if stop.Name == name {
			return true
		}
	}
	return false
}

// Shipment is a tracked cargo container's lifecycle record. The ID is an
// opaque identifier assigned by the remote system at creation time; the API
// serves it under the legacy "_id" key.
type Shipment struct {
	ID               string    `json:"_id"`
	ContainerID      string    `json:"containerId"`
	Status           Status    `json:"status"`
	DepartureDate    time.Time `json:"departureDate"`
	EstimatedArrival time.Time `json:"estimatedArrival"`
	Cargo            Cargo     `json:"cargo"`
	CurrentLocation  Location  `json:"currentLocation"`
	Route            Route     `json:"route"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ETA is the estimated-arrival document served by the remote API. Its shape is
// owned by the server and passed through verbatim.
type ETA map[string]any
