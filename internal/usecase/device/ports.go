package device

import (
	"context"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
	"device-tracker/internal/store"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=mocks_test.go -package=device

type DeviceReader interface {
	GetDevice(ctx context.Context, deviceID string) (*domainDevice.Device, error)
}

// RegistryStore is the part of the record store the registry writes and reads.
type RegistryStore interface {
	DeviceReader
	CreateDevice(ctx context.Context, d *domainDevice.Device) error
	CreateAccessCode(ctx context.Context, code *domainDevice.AccessCode) error
	ListDevices(ctx context.Context, owner uuid.UUID) ([]*domainDevice.Device, error)
	WatchDevices(ctx context.Context, owner uuid.UUID) (*store.Subscription[domainDevice.Device], error)
	LatestLocation(ctx context.Context, deviceID string) (*domainLocation.Record, error)
}

// CascadeStore is the part of the record store a cascade delete touches.
type CascadeStore interface {
	DeviceReader
	AccessCodesForDevice(ctx context.Context, deviceID string) ([]*domainDevice.AccessCode, error)
	LocationsForDevice(ctx context.Context, deviceID string) ([]*domainLocation.Record, error)
	DeleteDevice(ctx context.Context, d *domainDevice.Device) error
	DeleteAccessCode(ctx context.Context, code *domainDevice.AccessCode) error
	DeleteLocation(ctx context.Context, rec *domainLocation.Record) error
}

// Confirmer asks the user a yes/no question. A false answer with a nil error is a decline.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// OverlayDetacher removes a device's map overlays.
type OverlayDetacher interface {
	Detach(deviceID string)
}
