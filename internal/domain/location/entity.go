package location

import (
	"time"

	"github.com/google/uuid"
)

// Record is one immutable, timestamped position report for a device.
type Record struct {
	ID         int64
	DeviceID   string
	Owner      uuid.UUID
	Latitude   float64
	Longitude  float64
	Accuracy   float64
	// Timestamp is assigned by the store when the record is written.
	Timestamp time.Time
	// ReportedAt is the device's own clock, if it sent one. Nothing orders by it.
	ReportedAt *time.Time
	DeviceName *string
}

// Point is a bare map position.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (r *Record) Point() Point {
	return Point{Lat: r.Latitude, Lng: r.Longitude}
}

// Label is the snapshot device name, or "Device" when none was reported.
func (r *Record) Label() string {
	if r.DeviceName == nil || *r.DeviceName == "" {
		return "Device"
	}
	return *r.DeviceName
}
