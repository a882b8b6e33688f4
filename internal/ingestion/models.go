package ingestion

import "time"

// LocationReport is a device position message from the telemetry feed.
// Coordinates are pointers so an omitted field is distinguishable from an
// explicit zero.
type LocationReport struct {
	ShipmentID string    `json:"shipmentId"`
	Name       string    `json:"name"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	Timestamp  time.Time `json:"timestamp"`
}
