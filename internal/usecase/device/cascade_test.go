package device

import (
	"context"
	"errors"
	"testing"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

type cascadeFixture struct {
	store     *MockCascadeStore
	confirmer *MockConfirmer
	overlays  *MockOverlayDetacher
	owner     uuid.UUID
	device    *domainDevice.Device
	codes     []*domainDevice.AccessCode
	locations []*domainLocation.Record
}

func newCascadeFixture(t *testing.T) *cascadeFixture {
	ctrl := gomock.NewController(t)
	owner := uuid.New()
	return &cascadeFixture{
		store:     NewMockCascadeStore(ctrl),
		confirmer: NewMockConfirmer(ctrl),
		overlays:  NewMockOverlayDetacher(ctrl),
		owner:     owner,
		device:    &domainDevice.Device{ID: "dev-1", Name: "Van", Owner: owner},
		codes: []*domainDevice.AccessCode{
			{Code: "ABCDEF", DeviceID: "dev-1", Owner: owner},
		},
		locations: []*domainLocation.Record{
			{ID: 1, DeviceID: "dev-1", Owner: owner},
			{ID: 2, DeviceID: "dev-1", Owner: owner},
			{ID: 3, DeviceID: "dev-1", Owner: owner},
		},
	}
}

func (f *cascadeFixture) expectQueries() {
	f.store.EXPECT().GetDevice(gomock.Any(), "dev-1").Return(f.device, nil)
	f.store.EXPECT().AccessCodesForDevice(gomock.Any(), "dev-1").Return(f.codes, nil)
	f.store.EXPECT().LocationsForDevice(gomock.Any(), "dev-1").Return(f.locations, nil)
}

func (f *cascadeFixture) delete() (DeleteOutcome, error) {
	return NewOrchestrator(f.store).Delete(context.Background(), f.owner, "dev-1", f.confirmer, f.overlays)
}

func TestDeleteConfirmedRemovesEverything(t *testing.T) {
	f := newCascadeFixture(t)
	f.confirmer.EXPECT().Confirm(gomock.Any(), DeletePrompt).Return(true, nil)
	f.expectQueries()

	f.store.EXPECT().DeleteAccessCode(gomock.Any(), f.codes[0]).Return(nil)
	f.store.EXPECT().DeleteDevice(gomock.Any(), f.device).Return(nil)
	f.store.EXPECT().DeleteLocation(gomock.Any(), gomock.Any()).Return(nil).Times(len(f.locations))
	f.overlays.EXPECT().Detach("dev-1")

	out, err := f.delete()
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if out.Declined || out.AccessCodes != 1 || out.Locations != 3 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestDeleteDeclinedTouchesNothing(t *testing.T) {
	f := newCascadeFixture(t)
	f.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, nil)

	out, err := f.delete()
	if err != nil {
		t.Fatalf("declined delete returned error: %v", err)
	}
	if !out.Declined {
		t.Fatal("expected declined outcome")
	}
}

func TestDeleteConfirmerFailure(t *testing.T) {
	f := newCascadeFixture(t)
	boom := errors.New("connection closed")
	f.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, boom)

	if _, err := f.delete(); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestDeletePartialFailureKeepsOverlays(t *testing.T) {
	f := newCascadeFixture(t)
	f.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
	f.expectQueries()

	deleteErr := errors.New("permission denied")
	f.store.EXPECT().DeleteAccessCode(gomock.Any(), gomock.Any()).Return(nil)
	f.store.EXPECT().DeleteDevice(gomock.Any(), gomock.Any()).Return(nil)
	f.store.EXPECT().DeleteLocation(gomock.Any(), f.locations[0]).Return(nil)
	f.store.EXPECT().DeleteLocation(gomock.Any(), f.locations[1]).Return(deleteErr)
	f.store.EXPECT().DeleteLocation(gomock.Any(), f.locations[2]).Return(deleteErr)
	// no Detach expectation: overlays must stay

	_, err := f.delete()

	var partial *PartialCascadeFailure
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialCascadeFailure, got %v", err)
	}
	if partial.Attempted != 5 || partial.Failed != 2 {
		t.Fatalf("attempted=%d failed=%d, want 5 and 2", partial.Attempted, partial.Failed)
	}
	if !errors.Is(err, deleteErr) {
		t.Fatal("partial failure should wrap the underlying delete error")
	}
}

func TestDeleteForeignDevice(t *testing.T) {
	f := newCascadeFixture(t)
	f.device.Owner = uuid.New()
	f.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
	f.store.EXPECT().GetDevice(gomock.Any(), "dev-1").Return(f.device, nil)
	f.store.EXPECT().AccessCodesForDevice(gomock.Any(), "dev-1").Return(f.codes, nil).AnyTimes()
	f.store.EXPECT().LocationsForDevice(gomock.Any(), "dev-1").Return(f.locations, nil).AnyTimes()

	if _, err := f.delete(); !errors.Is(err, domainDevice.ErrDeviceNotFound) {
		t.Fatalf("err = %v, want ErrDeviceNotFound", err)
	}
}

func TestDeleteQueryFailureDeletesNothing(t *testing.T) {
	f := newCascadeFixture(t)
	queryErr := errors.New("timeout")
	f.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
	f.store.EXPECT().GetDevice(gomock.Any(), "dev-1").Return(f.device, nil).AnyTimes()
	f.store.EXPECT().AccessCodesForDevice(gomock.Any(), "dev-1").Return(nil, queryErr)
	f.store.EXPECT().LocationsForDevice(gomock.Any(), "dev-1").Return(f.locations, nil).AnyTimes()

	if _, err := f.delete(); !errors.Is(err, queryErr) {
		t.Fatalf("err = %v, want %v", err, queryErr)
	}
}
