// Package memory holds map-backed repositories used with DB_DRIVER=memory and in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainDevice "device-tracker/internal/domain/device"

	"github.com/google/uuid"
)

type deviceRepository struct {
	mu      sync.RWMutex
	devices map[string]domainDevice.Device
}

func NewDeviceRepository() domainDevice.Repository {
	return &deviceRepository{
		devices: make(map[string]domainDevice.Device),
	}
}

func (r *deviceRepository) Create(_ context.Context, d *domainDevice.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[d.ID]; ok {
		return domainDevice.ErrDeviceAlreadyExists
	}
	d.CreatedAt = time.Now().UTC()
	if d.Status == "" {
		d.Status = domainDevice.StatusInactive
	}
	r.devices[d.ID] = *d
	return nil
}

func (r *deviceRepository) GetByID(_ context.Context, deviceID string) (*domainDevice.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[deviceID]
	if !ok {
		return nil, domainDevice.ErrDeviceNotFound
	}
	return &d, nil
}

func (r *deviceRepository) ListByOwner(_ context.Context, owner uuid.UUID) ([]*domainDevice.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domainDevice.Device, 0)
	for _, d := range r.devices {
		if d.Owner == owner {
			d := d
			out = append(out, &d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *deviceRepository) Delete(_ context.Context, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[deviceID]; !ok {
		return domainDevice.ErrDeviceNotFound
	}
	delete(r.devices, deviceID)
	return nil
}

type accessCodeRepository struct {
	mu    sync.RWMutex
	codes map[string]domainDevice.AccessCode
}

func NewAccessCodeRepository() domainDevice.AccessCodeRepository {
	return &accessCodeRepository{
		codes: make(map[string]domainDevice.AccessCode),
	}
}

func (r *accessCodeRepository) Create(_ context.Context, code *domainDevice.AccessCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[code.Code]; ok {
		return domainDevice.ErrAccessCodeExists
	}
	code.CreatedAt = time.Now().UTC()
	r.codes[code.Code] = *code
	return nil
}

func (r *accessCodeRepository) GetByCode(_ context.Context, code string) (*domainDevice.AccessCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codes[code]
	if !ok {
		return nil, domainDevice.ErrAccessCodeNotFound
	}
	return &c, nil
}

func (r *accessCodeRepository) ListByDevice(_ context.Context, deviceID string) ([]*domainDevice.AccessCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domainDevice.AccessCode, 0)
	for _, c := range r.codes {
		if c.DeviceID == deviceID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *accessCodeRepository) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[code]; !ok {
		return domainDevice.ErrAccessCodeNotFound
	}
	delete(r.codes, code)
	return nil
}
