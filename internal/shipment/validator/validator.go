package validator

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"cargo-tracker/internal/shipment/model"
)

// Error messages shown next to the offending form field.
const (
	MsgLatitudeRequired = "Latitude is required"
	MsgNameRequired     = "Location name is required"
	MsgInvalidCoords    = "Invalid coordinates"
)

// maxFractionDigits is the precision sanity limit applied to coordinates.
// Six fractional digits is roughly 10 cm of ground resolution; anything finer
// is noise for cargo tracking.
const maxFractionDigits = 6

// FieldErrors maps a form field name to a user-facing message. It satisfies
// error so callers can return it directly; an empty map means valid input.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// ValidateCoordinates checks a latitude/longitude pair supplied from a form,
// where nil means the field was left empty. A missing latitude is reported as
// "required" rather than "invalid": zero is a legitimate latitude and must not
// be mistaken for absence. All other failures mark both fields invalid.
func ValidateCoordinates(lat, lng *float64) FieldErrors {
	errs := FieldErrors{}
	if lat == nil {
		errs["latitude"] = MsgLatitudeRequired
		return errs
	}
	if lng == nil || !coordinateInRange(*lat, *lng) {
		errs["latitude"] = MsgInvalidCoords
		errs["longitude"] = MsgInvalidCoords
	}
	return errs
}

// ValidateCoordinate checks an already-materialized coordinate value, as found
// on route stops and persisted locations.
func ValidateCoordinate(c model.Coordinate) FieldErrors {
	return ValidateCoordinates(&c.Latitude, &c.Longitude)
}

func coordinateInRange(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return false
	}
	return fractionDigits(lat) <= maxFractionDigits && fractionDigits(lng) <= maxFractionDigits
}

// fractionDigits counts decimal digits in the shortest round-trip
// representation of v. The check is deliberately string-based rather than a
// numeric rounding: a value that renders with a long fractional tail is
// rejected even when it is a float artifact of an innocent-looking input.
func fractionDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if _, frac, ok := strings.Cut(s, "."); ok {
		return len(frac)
	}
	return 0
}

// ValidateCreateShipment checks every coordinate a create request carries
// before it is allowed near the network: the current location plus each route
// stop. Errors are keyed by field path so the form can place them.
func ValidateCreateShipment(req *model.CreateShipmentRequest) FieldErrors {
	errs := FieldErrors{}
	for field, msg := range ValidateCoordinate(req.CurrentLocation.Coordinates) {
		errs["currentLocation."+field] = msg
	}
	for i, stop := range req.Route {
		for field, msg := range ValidateCoordinate(stop.Coordinates) {
			errs["route."+strconv.Itoa(i)+"."+field] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateLocationUpdate checks an update-location payload.
func ValidateLocationUpdate(req *model.UpdateLocationRequest) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = MsgNameRequired
	}
	for field, msg := range ValidateCoordinate(req.Coordinates) {
		errs[field] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
