package device

import (
	"context"
	"strings"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
	"device-tracker/internal/logger"
	"device-tracker/internal/store"
	appErrors "device-tracker/pkg/errors"
	"device-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry implements device registration and listing.
type Registry struct {
	store   RegistryStore
	newID   func() (string, error)
	newCode func() (string, error)
}

func NewRegistry(s RegistryStore) *Registry {
	return &Registry{
		store:   s,
		newID:   NewDeviceID,
		newCode: GenerateAccessCode,
	}
}

// Register creates a device and its access code. The two writes are not
// atomic: when the access code write fails the device is left without one
// and the error is returned.
func (r *Registry) Register(ctx context.Context, owner uuid.UUID, name string) (*RegisterResult, error) {
	req := &RegisterDeviceRequest{Name: name}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Device name must be at least 2 characters", err)
	}

	deviceID, err := r.newID()
	if err != nil {
		return nil, err
	}

	d := &domainDevice.Device{
		ID:     deviceID,
		Name:   strings.TrimSpace(req.Name),
		Owner:  owner,
		Status: domainDevice.StatusInactive,
	}
	if err := r.store.CreateDevice(ctx, d); err != nil {
		return nil, err
	}

	code, err := r.newCode()
	if err == nil {
		err = r.store.CreateAccessCode(ctx, &domainDevice.AccessCode{
			Code:     code,
			DeviceID: deviceID,
			Owner:    owner,
		})
	}
	if err != nil {
		logger.Error("Device registered without access code",
			zap.String("device_id", deviceID),
			zap.String("owner", owner.String()),
			zap.String("event", "device_orphaned"),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Info("Device registered",
		zap.String("device_id", deviceID),
		zap.String("owner", owner.String()),
		zap.String("event", "device_registered"),
	)

	return &RegisterResult{DeviceID: deviceID, AccessCode: code}, nil
}

func (r *Registry) List(ctx context.Context, owner uuid.UUID) ([]*DeviceResponse, error) {
	devices, err := r.store.ListDevices(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]*DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, ToDeviceResponse(d))
	}
	return out, nil
}

// Watch opens the live device list query for owner.
func (r *Registry) Watch(ctx context.Context, owner uuid.UUID) (*store.Subscription[domainDevice.Device], error) {
	return r.store.WatchDevices(ctx, owner)
}

// Latest returns the newest location of one of owner's devices.
func (r *Registry) Latest(ctx context.Context, owner uuid.UUID, deviceID string) (*domainLocation.Record, error) {
	if _, err := ValidateOwnership(ctx, r.store, owner, deviceID); err != nil {
		return nil, err
	}
	return r.store.LatestLocation(ctx, deviceID)
}
