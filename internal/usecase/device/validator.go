package device

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	domainDevice "device-tracker/internal/domain/device"

	"github.com/google/uuid"
)

// GenerateAccessCode draws AccessCodeLength characters uniformly from AccessCodeAlphabet.
func GenerateAccessCode() (string, error) {
	alphabet := domainDevice.AccessCodeAlphabet
	max := big.NewInt(int64(len(alphabet)))

	code := make([]byte, domainDevice.AccessCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate access code: %w", err)
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}

// NewDeviceID returns a time-ordered identifier: millisecond prefix, random suffix.
func NewDeviceID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate device id: %w", err)
	}
	return id.String(), nil
}

// ValidateOwnership loads deviceID and checks it belongs to owner. A device
// owned by someone else is reported as not found.
func ValidateOwnership(ctx context.Context, store DeviceReader, owner uuid.UUID, deviceID string) (*domainDevice.Device, error) {
	d, err := store.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if d.Owner != owner {
		return nil, domainDevice.ErrDeviceNotFound
	}
	return d, nil
}
