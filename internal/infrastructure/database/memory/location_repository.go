package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainLocation "device-tracker/internal/domain/location"

	"github.com/google/uuid"
)

type locationRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]domainLocation.Record
}

func NewLocationRepository() domainLocation.Repository {
	return &locationRepository{
		records: make(map[int64]domainLocation.Record),
	}
}

func (r *locationRepository) Create(_ context.Context, rec *domainLocation.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec.ID = r.nextID
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	r.records[rec.ID] = *rec
	return nil
}

func (r *locationRepository) ListByDevice(_ context.Context, deviceID string) ([]*domainLocation.Record, error) {
	return r.list(func(rec *domainLocation.Record) bool { return rec.DeviceID == deviceID }), nil
}

func (r *locationRepository) ListByOwner(_ context.Context, owner uuid.UUID) ([]*domainLocation.Record, error) {
	return r.list(func(rec *domainLocation.Record) bool { return rec.Owner == owner }), nil
}

func (r *locationRepository) LatestByDevice(ctx context.Context, deviceID string) (*domainLocation.Record, error) {
	recs, _ := r.ListByDevice(ctx, deviceID)
	if len(recs) == 0 {
		return nil, domainLocation.ErrLocationNotFound
	}
	return recs[0], nil
}

func (r *locationRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return domainLocation.ErrLocationNotFound
	}
	delete(r.records, id)
	return nil
}

// list returns matching records newest first; ties keep insertion order reversed.
func (r *locationRepository) list(match func(*domainLocation.Record) bool) []*domainLocation.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domainLocation.Record, 0)
	for _, rec := range r.records {
		rec := rec
		if match(&rec) {
			out = append(out, &rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
