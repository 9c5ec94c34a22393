package device

import "errors"

var (
	ErrDeviceNotFound      = errors.New("device not found")
	ErrDeviceAlreadyExists = errors.New("device already exists")
	ErrAccessCodeNotFound  = errors.New("access code not found")
	ErrAccessCodeExists    = errors.New("access code already exists")
	ErrInvalidStatus       = errors.New("invalid device status")
)
