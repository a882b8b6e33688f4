package validator

import (
	"strings"

	"cargo-tracker/internal/shipment/model"
)

// RouteDraft accumulates stops while a shipment form is being filled in.
// A stop only enters the draft once its name and coordinates pass validation;
// a failed add leaves the draft untouched.
type RouteDraft struct {
	stops model.Route
}

// AddStop validates and appends a stop. The name check runs first and
// short-circuits, matching the form's field-by-field feedback.
func (d *RouteDraft) AddStop(stop model.RouteStop) FieldErrors {
	if strings.TrimSpace(stop.Name) == "" {
		return FieldErrors{"name": MsgNameRequired}
	}
	if errs := ValidateCoordinate(stop.Coordinates); len(errs) > 0 {
		return errs
	}
	d.stops = append(d.stops, stop)
	return nil
}

// RemoveStop drops the stop at index i. Out-of-range indexes are ignored;
// removal never validates.
func (d *RouteDraft) RemoveStop(i int) {
	if i < 0 || i >= len(d.stops) {
		return
	}
	d.stops = append(d.stops[:i], d.stops[i+1:]...)
}

// Stops returns a copy of the accumulated route.
func (d *RouteDraft) Stops() model.Route {
	out := make(model.Route, len(d.stops))
	copy(out, d.stops)
	return out
}

// Len reports the number of stops currently in the draft.
func (d *RouteDraft) Len() int {
	return len(d.stops)
}
