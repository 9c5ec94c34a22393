package location

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrLocationNotFound = errors.New("location not found")

// Repository defines the persistence operations for the locations collection.
// List operations return records ordered by timestamp descending.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	ListByDevice(ctx context.Context, deviceID string) ([]*Record, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*Record, error)
	LatestByDevice(ctx context.Context, deviceID string) (*Record, error)
	Delete(ctx context.Context, id int64) error
}
