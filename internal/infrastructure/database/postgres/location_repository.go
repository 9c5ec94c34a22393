package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainLocation "device-tracker/internal/domain/location"
	"device-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newestFirst orders by the quoted "timestamp" column.
var newestFirst = clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}

// LocationRepository implements domainLocation.Repository
type LocationRepository struct {
	db *DB
}

func NewLocationRepository(db *DB) domainLocation.Repository {
	return &LocationRepository{db: db}
}

// Create stores an immutable location record. A zero timestamp is replaced by
// the store's clock.
func (r *LocationRepository) Create(ctx context.Context, rec *domainLocation.Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	dbModel := toLocationModel(rec)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	rec.ID = dbModel.ID

	return nil
}

func (r *LocationRepository) ListByDevice(ctx context.Context, deviceID string) ([]*domainLocation.Record, error) {
	return r.list(ctx, "device_id = ?", deviceID)
}

func (r *LocationRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*domainLocation.Record, error) {
	return r.list(ctx, "owner = ?", owner)
}

func (r *LocationRepository) list(ctx context.Context, where string, arg interface{}) ([]*domainLocation.Record, error) {
	var dbModels []models.LocationModel
	err := r.db.DB.WithContext(ctx).
		Where(where, arg).
		Order(newestFirst).
		Order("id DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	records := make([]*domainLocation.Record, len(dbModels))
	for i := range dbModels {
		records[i] = toLocationEntity(&dbModels[i])
	}

	return records, nil
}

func (r *LocationRepository) LatestByDevice(ctx context.Context, deviceID string) (*domainLocation.Record, error) {
	var dbModel models.LocationModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order(newestFirst).
		Order("id DESC").
		Limit(1).
		Take(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainLocation.ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest location: %w", err)
	}

	return toLocationEntity(&dbModel), nil
}

func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.LocationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainLocation.ErrLocationNotFound
	}

	return nil
}

func toLocationModel(rec *domainLocation.Record) *models.LocationModel {
	return &models.LocationModel{
		ID:         rec.ID,
		DeviceID:   rec.DeviceID,
		Owner:      rec.Owner,
		Lat:        rec.Latitude,
		Lng:        rec.Longitude,
		Accuracy:   rec.Accuracy,
		Timestamp:  rec.Timestamp,
		ReportedAt: rec.ReportedAt,
		DeviceName: rec.DeviceName,
	}
}

func toLocationEntity(m *models.LocationModel) *domainLocation.Record {
	return &domainLocation.Record{
		ID:         m.ID,
		DeviceID:   m.DeviceID,
		Owner:      m.Owner,
		Latitude:   m.Lat,
		Longitude:  m.Lng,
		Accuracy:   m.Accuracy,
		Timestamp:  m.Timestamp,
		ReportedAt: m.ReportedAt,
		DeviceName: m.DeviceName,
	}
}
