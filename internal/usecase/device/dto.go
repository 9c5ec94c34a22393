package device

import (
	"time"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
)

type RegisterDeviceRequest struct {
	Name string `json:"name" validate:"trimmed_min2"`
}

type RegisterResult struct {
	DeviceID   string `json:"device_id"`
	AccessCode string `json:"access_code"`
}

type DeviceResponse struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Status    domainDevice.DeviceStatus `json:"status"`
	CreatedAt time.Time                 `json:"created_at"`
}

type LocationResponse struct {
	DeviceID   string    `json:"device_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy"`
	Timestamp  time.Time  `json:"timestamp"`
	ReportedAt *time.Time `json:"reported_at,omitempty"`
	DeviceName string     `json:"device_name"`
}

// DeleteOutcome reports what a cascade delete did. Declined is set when the
// user did not confirm; nothing was touched in that case.
type DeleteOutcome struct {
	DeviceID    string `json:"device_id"`
	Declined    bool   `json:"declined"`
	AccessCodes int    `json:"access_codes_deleted"`
	Locations   int    `json:"locations_deleted"`
}

func ToDeviceResponse(d *domainDevice.Device) *DeviceResponse {
	if d == nil {
		return nil
	}
	return &DeviceResponse{
		ID:        d.ID,
		Name:      d.Name,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
	}
}

func ToLocationResponse(r *domainLocation.Record) *LocationResponse {
	if r == nil {
		return nil
	}
	return &LocationResponse{
		DeviceID:   r.DeviceID,
		Lat:        r.Latitude,
		Lng:        r.Longitude,
		Accuracy:   r.Accuracy,
		Timestamp:  r.Timestamp,
		ReportedAt: r.ReportedAt,
		DeviceName: r.Label(),
	}
}
