package device

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
	appErrors "device-tracker/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func TestRegisterRejectsShortNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"whitespace padded single char", "   b  "},
		{"only spaces", "      "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// no store expectations: any store call fails the test
			r := NewRegistry(NewMockRegistryStore(ctrl))

			_, err := r.Register(context.Background(), uuid.New(), tt.input)
			if !appErrors.HasCode(err, appErrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterWritesDeviceThenAccessCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := NewMockRegistryStore(ctrl)
	owner := uuid.New()

	var created *domainDevice.Device
	gomock.InOrder(
		st.EXPECT().CreateDevice(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, d *domainDevice.Device) error {
				created = d
				return nil
			}),
		st.EXPECT().CreateAccessCode(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c *domainDevice.AccessCode) error {
				if c.DeviceID != created.ID || c.Owner != owner {
					t.Errorf("access code not bound to device: %+v", c)
				}
				return nil
			}),
	)

	res, err := NewRegistry(st).Register(context.Background(), owner, "  Delivery Van ")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if created.Name != "Delivery Van" {
		t.Errorf("name = %q, want trimmed", created.Name)
	}
	if created.Status != domainDevice.StatusInactive {
		t.Errorf("status = %q, want inactive", created.Status)
	}
	if res.DeviceID != created.ID {
		t.Errorf("result id = %q, want %q", res.DeviceID, created.ID)
	}
	if _, err := uuid.Parse(res.DeviceID); err != nil {
		t.Errorf("device id %q is not a uuid: %v", res.DeviceID, err)
	}
	if len(res.AccessCode) != domainDevice.AccessCodeLength {
		t.Errorf("access code %q has wrong length", res.AccessCode)
	}
}

func TestRegisterOrphanedDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := NewMockRegistryStore(ctrl)
	writeErr := appErrors.NewAppError(appErrors.CodeStoreWrite, "failed to write record", errors.New("unavailable"))

	st.EXPECT().CreateDevice(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().CreateAccessCode(gomock.Any(), gomock.Any()).Return(writeErr)

	res, err := NewRegistry(st).Register(context.Background(), uuid.New(), "Tracker")
	if res != nil {
		t.Fatalf("expected no result, got %+v", res)
	}
	if !appErrors.HasCode(err, appErrors.CodeStoreWrite) {
		t.Fatalf("expected store write error, got %v", err)
	}
}

func TestRegisterDeviceWriteFailureSkipsAccessCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := NewMockRegistryStore(ctrl)

	st.EXPECT().CreateDevice(gomock.Any(), gomock.Any()).Return(errors.New("down"))

	if _, err := NewRegistry(st).Register(context.Background(), uuid.New(), "Tracker"); err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerateAccessCodeAlphabet(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateAccessCode()
		if err != nil {
			t.Fatalf("GenerateAccessCode: %v", err)
		}
		if len(code) != domainDevice.AccessCodeLength {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		for _, ch := range code {
			if !strings.ContainsRune(domainDevice.AccessCodeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
	}
}

func TestNewDeviceIDIsTimeOrdered(t *testing.T) {
	a, _ := NewDeviceID()
	b, _ := NewDeviceID()
	if a == b {
		t.Fatal("ids collide")
	}
	// UUIDv7 ids sort by their millisecond prefix
	if a[:8] > b[:8] {
		t.Fatalf("ids not time ordered: %s then %s", a, b)
	}
}

func TestLatestChecksOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := NewMockRegistryStore(ctrl)
	owner := uuid.New()

	st.EXPECT().GetDevice(gomock.Any(), "mine").Return(&domainDevice.Device{ID: "mine", Owner: owner}, nil)
	st.EXPECT().LatestLocation(gomock.Any(), "mine").Return(&domainLocation.Record{DeviceID: "mine", Latitude: 1}, nil)
	st.EXPECT().GetDevice(gomock.Any(), "theirs").Return(&domainDevice.Device{ID: "theirs", Owner: uuid.New()}, nil)

	r := NewRegistry(st)
	if rec, err := r.Latest(context.Background(), owner, "mine"); err != nil || rec.Latitude != 1 {
		t.Fatalf("Latest(mine) = %+v, %v", rec, err)
	}
	if _, err := r.Latest(context.Background(), owner, "theirs"); !errors.Is(err, domainDevice.ErrDeviceNotFound) {
		t.Fatalf("Latest(theirs) err = %v", err)
	}
}

func TestListMapsDevices(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := NewMockRegistryStore(ctrl)
	owner := uuid.New()

	st.EXPECT().ListDevices(gomock.Any(), owner).Return([]*domainDevice.Device{
		{ID: "a", Name: "Alpha", Owner: owner},
		{ID: "b", Name: "Beta", Owner: owner},
	}, nil)

	list, err := NewRegistry(st).List(context.Background(), owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[1].Name != "Beta" {
		t.Fatalf("unexpected list %+v", list)
	}
}
