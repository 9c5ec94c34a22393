package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationModel represents the database model for the locations collection.
type LocationModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	DeviceID   string    `gorm:"type:varchar(64);not null;index:idx_locations_device_time,priority:1"`
	Owner      uuid.UUID `gorm:"type:uuid;not null;index:idx_locations_owner_time,priority:1"`
	Lat        float64   `gorm:"column:lat;not null"`
	Lng        float64   `gorm:"column:lng;not null"`
	Accuracy   float64   `gorm:"not null;default:0"`
	Timestamp  time.Time `gorm:"not null;index:idx_locations_device_time,priority:2;index:idx_locations_owner_time,priority:2"`
	ReportedAt *time.Time
	DeviceName *string   `gorm:"type:varchar(255)"`
}

func (LocationModel) TableName() string {
	return "locations"
}
