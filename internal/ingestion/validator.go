package ingestion

import (
	"fmt"
	"strings"

	"device-tracker/internal/domain/device"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

// ValidateLocationMessage checks the code shape and coordinate ranges.
func ValidateLocationMessage(msg *LocationMessage) error {
	if msg.AccessCode == "" {
		return &ValidationError{Field: "access_code", Message: "access_code is required"}
	}
	if len(msg.AccessCode) != device.AccessCodeLength {
		return &ValidationError{Field: "access_code", Message: fmt.Sprintf("access_code must be %d characters", device.AccessCodeLength)}
	}
	for _, r := range msg.AccessCode {
		if !strings.ContainsRune(device.AccessCodeAlphabet, r) {
			return &ValidationError{Field: "access_code", Message: "access_code contains invalid characters"}
		}
	}

	if msg.Latitude < -90 || msg.Latitude > 90 {
		return &ValidationError{Field: "lat", Message: "lat must be between -90 and 90"}
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return &ValidationError{Field: "lng", Message: "lng must be between -180 and 180"}
	}

	if msg.Accuracy < 0 {
		return &ValidationError{Field: "accuracy", Message: "accuracy must be non-negative"}
	}

	if msg.DeviceName != nil && len(*msg.DeviceName) > 100 {
		return &ValidationError{Field: "device_name", Message: "device_name must be at most 100 characters"}
	}

	return nil
}
