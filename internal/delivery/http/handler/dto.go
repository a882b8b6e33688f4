package handler

import (
	"strconv"
	"strings"
	"time"

	"cargo-tracker/internal/shipment/model"
	"cargo-tracker/internal/shipment/validator"
)

// CoordinateInput keeps latitude/longitude as pointers so an omitted field is
// distinguishable from an explicit zero. Zero is a legitimate coordinate.
type CoordinateInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (in CoordinateInput) toModel() model.Coordinate {
	c := model.Coordinate{}
	if in.Latitude != nil {
		c.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		c.Longitude = *in.Longitude
	}
	return c
}

type LocationInput struct {
	Name        string          `json:"name"`
	Coordinates CoordinateInput `json:"coordinates"`
}

type RouteStopInput struct {
	Name          string          `json:"name"`
	Coordinates   CoordinateInput `json:"coordinates"`
	ArrivalTime   *time.Time      `json:"arrivalTime,omitempty"`
	DepartureTime *time.Time      `json:"departureTime,omitempty"`
}

// CreateShipmentInput is the form payload for a new shipment.
type CreateShipmentInput struct {
	ContainerID      string           `json:"containerId"`
	Status           model.Status     `json:"status"`
	DepartureDate    time.Time        `json:"departureDate"`
	EstimatedArrival time.Time        `json:"estimatedArrival"`
	Cargo            model.Cargo      `json:"cargo"`
	CurrentLocation  LocationInput    `json:"currentLocation"`
	Route            []RouteStopInput `json:"route"`
	Notes            string           `json:"notes"`
}

// Validate applies the form-level rules: required fields plus the nil-aware
// coordinate checks for the current location and every route stop.
func (in *CreateShipmentInput) Validate() validator.FieldErrors {
	errs := validator.FieldErrors{}

	if strings.TrimSpace(in.ContainerID) == "" {
		errs["containerId"] = "Container ID is required"
	}
	if in.Status != "" && !in.Status.Valid() {
		errs["status"] = "Unknown status"
	}
	if strings.TrimSpace(in.CurrentLocation.Name) == "" {
		errs["currentLocation.name"] = validator.MsgNameRequired
	}
	for field, msg := range validator.ValidateCoordinates(in.CurrentLocation.Coordinates.Latitude, in.CurrentLocation.Coordinates.Longitude) {
		errs["currentLocation."+field] = msg
	}
	for i, stop := range in.Route {
		prefix := "route." + strconv.Itoa(i) + "."
		if strings.TrimSpace(stop.Name) == "" {
			errs[prefix+"name"] = validator.MsgNameRequired
		}
		for field, msg := range validator.ValidateCoordinates(stop.Coordinates.Latitude, stop.Coordinates.Longitude) {
			errs[prefix+field] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToRequest converts validated input into the gateway request shape.
func (in *CreateShipmentInput) ToRequest() *model.CreateShipmentRequest {
	status := in.Status
	if status == "" {
		status = model.StatusLoading
	}

	route := make(model.Route, 0, len(in.Route))
	for _, stop := range in.Route {
		route = append(route, model.RouteStop{
			Name:          stop.Name,
			Coordinates:   stop.Coordinates.toModel(),
			ArrivalTime:   stop.ArrivalTime,
			DepartureTime: stop.DepartureTime,
		})
	}

	return &model.CreateShipmentRequest{
		ContainerID:      in.ContainerID,
		Status:           status,
		DepartureDate:    in.DepartureDate,
		EstimatedArrival: in.EstimatedArrival,
		Cargo:            in.Cargo,
		CurrentLocation: model.Location{
			Name:        in.CurrentLocation.Name,
			Coordinates: in.CurrentLocation.Coordinates.toModel(),
			Timestamp:   time.Now().UTC(),
		},
		Route: route,
		Notes: in.Notes,
	}
}

// UpdateLocationInput is the form payload for a position report.
type UpdateLocationInput struct {
	Name        string          `json:"name"`
	Coordinates CoordinateInput `json:"coordinates"`
}

// Validate mirrors the update-location form: name first, then coordinates.
func (in *UpdateLocationInput) Validate() validator.FieldErrors {
	errs := validator.FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = validator.MsgNameRequired
	}
	for field, msg := range validator.ValidateCoordinates(in.Coordinates.Latitude, in.Coordinates.Longitude) {
		errs[field] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (in *UpdateLocationInput) ToRequest() *model.UpdateLocationRequest {
	return &model.UpdateLocationRequest{
		Name:        in.Name,
		Coordinates: in.Coordinates.toModel(),
	}
}
