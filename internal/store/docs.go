package store

import (
	"time"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"

	"github.com/google/uuid"
)

// DeviceDoc is the feed payload for the devices collection.
type DeviceDoc struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     uuid.UUID `json:"owner"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationDoc is the feed payload for the locations collection.
type LocationDoc struct {
	ID         int64     `json:"id"`
	DeviceID   string    `json:"device_id"`
	Owner      uuid.UUID `json:"owner"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy"`
	Timestamp  time.Time  `json:"timestamp"`
	ReportedAt *time.Time `json:"reported_at,omitempty"`
	DeviceName *string    `json:"device_name,omitempty"`
}

func toDeviceDoc(d *domainDevice.Device) DeviceDoc {
	return DeviceDoc{
		ID:        d.ID,
		Name:      d.Name,
		Owner:     d.Owner,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

func (d DeviceDoc) Entity() *domainDevice.Device {
	return &domainDevice.Device{
		ID:        d.ID,
		Name:      d.Name,
		Owner:     d.Owner,
		Status:    domainDevice.DeviceStatus(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

func toLocationDoc(r *domainLocation.Record) LocationDoc {
	return LocationDoc{
		ID:         r.ID,
		DeviceID:   r.DeviceID,
		Owner:      r.Owner,
		Lat:        r.Latitude,
		Lng:        r.Longitude,
		Accuracy:   r.Accuracy,
		Timestamp:  r.Timestamp,
		ReportedAt: r.ReportedAt,
		DeviceName: r.DeviceName,
	}
}

func (d LocationDoc) Entity() *domainLocation.Record {
	return &domainLocation.Record{
		ID:         d.ID,
		DeviceID:   d.DeviceID,
		Owner:      d.Owner,
		Latitude:   d.Lat,
		Longitude:  d.Lng,
		Accuracy:   d.Accuracy,
		Timestamp:  d.Timestamp,
		ReportedAt: d.ReportedAt,
		DeviceName: d.DeviceName,
	}
}
