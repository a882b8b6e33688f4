package model

import "time"

// CreateShipmentRequest carries everything the client supplies at creation
// time. The ID and server timestamps are assigned remotely.
type CreateShipmentRequest struct {
	ContainerID      string    `json:"containerId" validate:"required"`
	Status           Status    `json:"status"`
	DepartureDate    time.Time `json:"departureDate"`
	EstimatedArrival time.Time `json:"estimatedArrival"`
	Cargo            Cargo     `json:"cargo"`
	CurrentLocation  Location  `json:"currentLocation"`
	Route            Route     `json:"route"`
	Notes            string    `json:"notes,omitempty"`
}

// EnsureOriginStop prepends the current location to the route when no stop
// carries its name yet, so a persisted route always starts where the shipment
// actually is. The synthesized stop records now as its departure time.
func (r *CreateShipmentRequest) EnsureOriginStop(now time.Time) {
	if r.CurrentLocation.Name == "" || r.Route.ContainsStop(r.CurrentLocation.Name) {
		return
	}
	departed := now
	origin := RouteStop{
		Name:          r.CurrentLocation.Name,
		Coordinates:   r.CurrentLocation.Coordinates,
		DepartureTime: &departed,
	}
	r.Route = append(Route{origin}, r.Route...)
}

// UpdateShipmentRequest is a partial update; nil fields are left untouched by
// the server.
type UpdateShipmentRequest struct {
	ContainerID      *string    `json:"containerId,omitempty"`
	Status           *Status    `json:"status,omitempty"`
	DepartureDate    *time.Time `json:"departureDate,omitempty"`
	EstimatedArrival *time.Time `json:"estimatedArrival,omitempty"`
	Cargo            *Cargo     `json:"cargo,omitempty"`
	CurrentLocation  *Location  `json:"currentLocation,omitempty"`
	Route            Route      `json:"route,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

// UpdateLocationRequest reports a new position for a shipment.
type UpdateLocationRequest struct {
	Name        string     `json:"name" validate:"required"`
	Coordinates Coordinate `json:"coordinates"`
}
