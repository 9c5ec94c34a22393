package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"

	"github.com/google/uuid"
)

func TestLocationRepositoryNewestFirst(t *testing.T) {
	repo := NewLocationRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset time.Duration
	}{
		{"middle", time.Minute},
		{"oldest", 0},
		{"newest", 2 * time.Minute},
	}
	for _, tt := range tests {
		name := tt.name
		rec := &domainLocation.Record{DeviceID: "d1", Timestamp: base.Add(tt.offset), DeviceName: &name}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	latest, err := repo.LatestByDevice(ctx, "d1")
	if err != nil {
		t.Fatalf("LatestByDevice: %v", err)
	}
	if latest.Label() != "newest" {
		t.Errorf("latest = %q, want newest", latest.Label())
	}

	list, _ := repo.ListByDevice(ctx, "d1")
	if got := list[len(list)-1].Label(); got != "oldest" {
		t.Errorf("last = %q, want oldest", got)
	}

	if _, err := repo.LatestByDevice(ctx, "d2"); !errors.Is(err, domainLocation.ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestDeviceRepositoryReturnsCopies(t *testing.T) {
	repo := NewDeviceRepository()
	ctx := context.Background()
	owner := uuid.New()

	if err := repo.Create(ctx, &domainDevice.Device{ID: "d1", Name: "Bike", Owner: owner}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, _ := repo.GetByID(ctx, "d1")
	got.Name = "mutated"

	again, _ := repo.GetByID(ctx, "d1")
	if again.Name != "Bike" {
		t.Fatalf("stored device was mutated through returned pointer")
	}
	if again.Status != domainDevice.StatusInactive {
		t.Errorf("status = %q, want inactive", again.Status)
	}
}
