package device

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for the devices collection.
type Repository interface {
	Create(ctx context.Context, device *Device) error
	GetByID(ctx context.Context, deviceID string) (*Device, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*Device, error)
	Delete(ctx context.Context, deviceID string) error
}

// AccessCodeRepository defines the persistence operations for the device_access collection.
type AccessCodeRepository interface {
	Create(ctx context.Context, code *AccessCode) error
	GetByCode(ctx context.Context, code string) (*AccessCode, error)
	ListByDevice(ctx context.Context, deviceID string) ([]*AccessCode, error)
	Delete(ctx context.Context, code string) error
}
