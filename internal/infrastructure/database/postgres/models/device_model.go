package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceModel represents the database model for the devices collection.
type DeviceModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Owner     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;default:'inactive'"`
	CreatedAt time.Time `gorm:"not null"`
}

func (DeviceModel) TableName() string {
	return "devices"
}

// AccessCodeModel represents the database model for the device_access collection.
type AccessCodeModel struct {
	Code     string    `gorm:"type:varchar(16);primaryKey"`
	DeviceID string    `gorm:"type:varchar(64);not null;index"`
	Owner    uuid.UUID `gorm:"type:uuid;not null;index"`
	Created  time.Time `gorm:"column:created;not null"`
}

func (AccessCodeModel) TableName() string {
	return "device_access"
}
