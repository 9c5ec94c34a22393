package device

import (
	"time"

	"github.com/google/uuid"
)

// Device represents a registered location-reporting unit owned by one user.
type Device struct {
	ID        string
	Name      string
	Owner     uuid.UUID
	Status    DeviceStatus
	CreatedAt time.Time
}

// DeviceStatus represents the status of a device
type DeviceStatus string

const (
	StatusInactive DeviceStatus = "inactive"
	StatusActive   DeviceStatus = "active"
)

// IsValid reports whether s is a known status.
func (s DeviceStatus) IsValid() bool {
	return s == StatusInactive || s == StatusActive
}

// AccessCode is a one-time enrollment grant binding a physical device to its Device record.
type AccessCode struct {
	Code      string
	DeviceID  string
	Owner     uuid.UUID
	CreatedAt time.Time
}

const (
	// AccessCodeAlphabet excludes visually confusable characters (0/O, 1/I/L).
	AccessCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	AccessCodeLength   = 6
	MinNameLength      = 2
)
