package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
	"device-tracker/internal/domain/user"

	"github.com/google/uuid"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenSQLite(":memory:", nil)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestDeviceRepositoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	d := &domainDevice.Device{ID: "dev-1", Name: "Truck", Owner: owner}
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Status != domainDevice.StatusInactive {
		t.Errorf("status = %q, want inactive", d.Status)
	}
	if d.CreatedAt.IsZero() {
		t.Error("expected store-assigned creation timestamp")
	}

	if err := repo.Create(ctx, &domainDevice.Device{ID: "dev-1", Name: "Dup", Owner: owner}); !errors.Is(err, domainDevice.ErrDeviceAlreadyExists) {
		t.Errorf("duplicate create err = %v, want ErrDeviceAlreadyExists", err)
	}

	if err := repo.Create(ctx, &domainDevice.Device{ID: "dev-2", Name: "Other", Owner: uuid.New()}); err != nil {
		t.Fatalf("Create other owner: %v", err)
	}

	got, err := repo.GetByID(ctx, "dev-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Truck" || got.Owner != owner {
		t.Errorf("unexpected device %+v", got)
	}

	list, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}

	if err := repo.Delete(ctx, "dev-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "dev-1"); !errors.Is(err, domainDevice.ErrDeviceNotFound) {
		t.Errorf("GetByID after delete err = %v", err)
	}
	if err := repo.Delete(ctx, "dev-1"); !errors.Is(err, domainDevice.ErrDeviceNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestAccessCodeRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccessCodeRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	for _, code := range []string{"ABC234", "XYZ789"} {
		if err := repo.Create(ctx, &domainDevice.AccessCode{Code: code, DeviceID: "dev-1", Owner: owner}); err != nil {
			t.Fatalf("Create %s: %v", code, err)
		}
	}
	if err := repo.Create(ctx, &domainDevice.AccessCode{Code: "ABC234", DeviceID: "dev-2", Owner: owner}); !errors.Is(err, domainDevice.ErrAccessCodeExists) {
		t.Errorf("duplicate code err = %v", err)
	}

	got, err := repo.GetByCode(ctx, "ABC234")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if got.DeviceID != "dev-1" {
		t.Errorf("device id = %q", got.DeviceID)
	}

	codes, err := repo.ListByDevice(ctx, "dev-1")
	if err != nil {
		t.Fatalf("ListByDevice: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("len(codes) = %d, want 2", len(codes))
	}

	if err := repo.Delete(ctx, "ABC234"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByCode(ctx, "ABC234"); !errors.Is(err, domainDevice.ErrAccessCodeNotFound) {
		t.Errorf("GetByCode after delete err = %v", err)
	}
}

func TestLocationRepositoryOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocationRepository(db)
	ctx := context.Background()
	owner := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, offset := range []time.Duration{2 * time.Minute, 0, time.Minute} {
		rec := &domainLocation.Record{
			DeviceID:  "dev-1",
			Owner:     owner,
			Latitude:  float64(i),
			Longitude: float64(i),
			Accuracy:  5,
			Timestamp: base.Add(offset),
		}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if rec.ID == 0 {
			t.Fatal("expected generated id")
		}
	}

	list, err := repo.ListByDevice(ctx, "dev-1")
	if err != nil {
		t.Fatalf("ListByDevice: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Timestamp.After(list[i-1].Timestamp) {
			t.Fatalf("records not ordered newest first: %v then %v", list[i-1].Timestamp, list[i].Timestamp)
		}
	}

	latest, err := repo.LatestByDevice(ctx, "dev-1")
	if err != nil {
		t.Fatalf("LatestByDevice: %v", err)
	}
	if latest.Latitude != 0 {
		t.Errorf("latest latitude = %v, want 0 (the +2m record)", latest.Latitude)
	}

	if _, err := repo.LatestByDevice(ctx, "missing"); !errors.Is(err, domainLocation.ErrLocationNotFound) {
		t.Errorf("LatestByDevice(missing) err = %v", err)
	}

	byOwner, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(byOwner) != 3 {
		t.Errorf("len(byOwner) = %d, want 3", len(byOwner))
	}

	if err := repo.Delete(ctx, latest.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, latest.ID); !errors.Is(err, domainLocation.ErrLocationNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestLocationRepositoryAssignsTimestamp(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocationRepository(db)

	reported := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &domainLocation.Record{DeviceID: "dev-1", Owner: uuid.New(), Latitude: 1, Longitude: 2, ReportedAt: &reported}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Timestamp.IsZero() {
		t.Fatal("expected store-assigned timestamp")
	}

	got, err := repo.LatestByDevice(context.Background(), "dev-1")
	if err != nil {
		t.Fatalf("LatestByDevice: %v", err)
	}
	if got.ReportedAt == nil || !got.ReportedAt.Equal(reported) {
		t.Errorf("reported at = %v, want %v", got.ReportedAt, reported)
	}
}

func TestUserAndRefreshTokenRepositories(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tokens := NewRefreshTokenRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "ada@example.com", DisplayName: "Ada", PasswordHashed: "hash"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := users.Create(ctx, &user.User{Email: "ada@example.com", DisplayName: "Ada", PasswordHashed: "x"}); !errors.Is(err, user.ErrUserAlreadyExists) {
		t.Errorf("duplicate email err = %v", err)
	}

	got, err := users.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != u.ID || !got.IsActive {
		t.Errorf("unexpected user %+v", got)
	}
	if _, err := users.GetByID(ctx, uuid.New()); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("GetByID(missing) err = %v", err)
	}

	rt := &user.RefreshToken{UserID: u.ID, Token: "refresh-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := tokens.Create(ctx, rt); err != nil {
		t.Fatalf("Create token: %v", err)
	}
	stored, err := tokens.GetByToken(ctx, "refresh-1")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if !stored.IsActive() {
		t.Fatal("expected fresh token to be active")
	}

	if err := tokens.Revoke(ctx, stored.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := tokens.Revoke(ctx, stored.ID); !errors.Is(err, user.ErrTokenRevoked) {
		t.Errorf("second revoke err = %v", err)
	}
	stored, _ = tokens.GetByToken(ctx, "refresh-1")
	if stored.IsActive() {
		t.Error("expected revoked token to be inactive")
	}

	if err := tokens.DeleteExpired(ctx, -time.Hour); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if _, err := tokens.GetByToken(ctx, "refresh-1"); !errors.Is(err, user.ErrTokenNotFound) {
		t.Errorf("GetByToken after cleanup err = %v", err)
	}
}
