package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainDevice "device-tracker/internal/domain/device"
	"device-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceRepository implements domainDevice.Repository
type DeviceRepository struct {
	db *DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *DB) domainDevice.Repository {
	return &DeviceRepository{db: db}
}

// Create stores the device; the creation timestamp is assigned here, not by the caller.
func (r *DeviceRepository) Create(ctx context.Context, d *domainDevice.Device) error {
	d.CreatedAt = time.Now().UTC()
	if d.Status == "" {
		d.Status = domainDevice.StatusInactive
	}

	dbModel := toDeviceModel(d)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return domainDevice.ErrDeviceAlreadyExists
		}
		return fmt.Errorf("failed to create device: %w", err)
	}

	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, deviceID string) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", deviceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*domainDevice.Device, error) {
	var dbModels []models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	devices := make([]*domainDevice.Device, len(dbModels))
	for i := range dbModels {
		devices[i] = toDeviceEntity(&dbModels[i])
	}

	return devices, nil
}

func (r *DeviceRepository) Delete(ctx context.Context, deviceID string) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", deviceID).
		Delete(&models.DeviceModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDevice.ErrDeviceNotFound
	}

	return nil
}

// AccessCodeRepository implements domainDevice.AccessCodeRepository
type AccessCodeRepository struct {
	db *DB
}

func NewAccessCodeRepository(db *DB) domainDevice.AccessCodeRepository {
	return &AccessCodeRepository{db: db}
}

func (r *AccessCodeRepository) Create(ctx context.Context, code *domainDevice.AccessCode) error {
	code.CreatedAt = time.Now().UTC()

	dbModel := &models.AccessCodeModel{
		Code:     code.Code,
		DeviceID: code.DeviceID,
		Owner:    code.Owner,
		Created:  code.CreatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return domainDevice.ErrAccessCodeExists
		}
		return fmt.Errorf("failed to create access code: %w", err)
	}

	return nil
}

func (r *AccessCodeRepository) GetByCode(ctx context.Context, code string) (*domainDevice.AccessCode, error) {
	var dbModel models.AccessCodeModel
	err := r.db.DB.WithContext(ctx).Where("code = ?", code).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrAccessCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get access code: %w", err)
	}

	return toAccessCodeEntity(&dbModel), nil
}

func (r *AccessCodeRepository) ListByDevice(ctx context.Context, deviceID string) ([]*domainDevice.AccessCode, error) {
	var dbModels []models.AccessCodeModel
	if err := r.db.DB.WithContext(ctx).Where("device_id = ?", deviceID).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list access codes: %w", err)
	}

	codes := make([]*domainDevice.AccessCode, len(dbModels))
	for i := range dbModels {
		codes[i] = toAccessCodeEntity(&dbModels[i])
	}

	return codes, nil
}

func (r *AccessCodeRepository) Delete(ctx context.Context, code string) error {
	result := r.db.DB.WithContext(ctx).Where("code = ?", code).Delete(&models.AccessCodeModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete access code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDevice.ErrAccessCodeNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toDeviceModel(d *domainDevice.Device) *models.DeviceModel {
	return &models.DeviceModel{
		ID:        d.ID,
		Name:      d.Name,
		Owner:     d.Owner,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

func toDeviceEntity(m *models.DeviceModel) *domainDevice.Device {
	return &domainDevice.Device{
		ID:        m.ID,
		Name:      m.Name,
		Owner:     m.Owner,
		Status:    domainDevice.DeviceStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func toAccessCodeEntity(m *models.AccessCodeModel) *domainDevice.AccessCode {
	return &domainDevice.AccessCode{
		Code:      m.Code,
		DeviceID:  m.DeviceID,
		Owner:     m.Owner,
		CreatedAt: m.Created,
	}
}
