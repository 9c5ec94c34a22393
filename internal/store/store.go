// Package store is the record store adapter used by the registry, the cascade
// orchestrator, the dashboard and ingestion. Every write and delete is
// published on the change feed after it commits.
package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
	"device-tracker/internal/feed"
	"device-tracker/internal/logger"
	appErrors "device-tracker/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store struct {
	devices   domainDevice.Repository
	codes     domainDevice.AccessCodeRepository
	locations domainLocation.Repository
	broker    feed.Broker
	now       func() time.Time
}

func New(
	devices domainDevice.Repository,
	codes domainDevice.AccessCodeRepository,
	locations domainLocation.Repository,
	broker feed.Broker,
) *Store {
	return &Store{
		devices:   devices,
		codes:     codes,
		locations: locations,
		broker:    broker,
		now:       time.Now,
	}
}

func writeError(err error) error {
	return appErrors.NewAppError(appErrors.CodeStoreWrite, "failed to write record", err)
}

func deleteError(err error) error {
	return appErrors.NewAppError(appErrors.CodeStoreDelete, "failed to delete record", err)
}

func queryError(err error) error {
	return appErrors.NewAppError(appErrors.CodeStoreQuery, "failed to query records", err)
}

// CreateDevice persists d; the creation timestamp is assigned here.
func (s *Store) CreateDevice(ctx context.Context, d *domainDevice.Device) error {
	if err := s.devices.Create(ctx, d); err != nil {
		return writeError(err)
	}
	s.publish(ctx, feed.Devices, feed.OpAdded, d.Owner, d.ID, toDeviceDoc(d))
	return nil
}

func (s *Store) CreateAccessCode(ctx context.Context, code *domainDevice.AccessCode) error {
	if err := s.codes.Create(ctx, code); err != nil {
		return writeError(err)
	}
	s.publish(ctx, feed.AccessCodes, feed.OpAdded, code.Owner, code.Code, nil)
	return nil
}

// AppendLocation persists rec stamped with the store's clock. Any timestamp
// set by the caller is overwritten.
func (s *Store) AppendLocation(ctx context.Context, rec *domainLocation.Record) error {
	rec.Timestamp = s.now().UTC()
	if err := s.locations.Create(ctx, rec); err != nil {
		return writeError(err)
	}
	s.publish(ctx, feed.Locations, feed.OpAdded, rec.Owner, locationKey(rec.ID), toLocationDoc(rec))
	return nil
}

func (s *Store) GetDevice(ctx context.Context, deviceID string) (*domainDevice.Device, error) {
	d, err := s.devices.GetByID(ctx, deviceID)
	if errors.Is(err, domainDevice.ErrDeviceNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, queryError(err)
	}
	return d, nil
}

func (s *Store) ListDevices(ctx context.Context, owner uuid.UUID) ([]*domainDevice.Device, error) {
	devices, err := s.devices.ListByOwner(ctx, owner)
	if err != nil {
		return nil, queryError(err)
	}
	return devices, nil
}

func (s *Store) AccessCodesForDevice(ctx context.Context, deviceID string) ([]*domainDevice.AccessCode, error) {
	codes, err := s.codes.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, queryError(err)
	}
	return codes, nil
}

func (s *Store) LocationsForDevice(ctx context.Context, deviceID string) ([]*domainLocation.Record, error) {
	recs, err := s.locations.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, queryError(err)
	}
	return recs, nil
}

func (s *Store) LocationsForOwner(ctx context.Context, owner uuid.UUID) ([]*domainLocation.Record, error) {
	recs, err := s.locations.ListByOwner(ctx, owner)
	if err != nil {
		return nil, queryError(err)
	}
	return recs, nil
}

// LatestLocation returns location.ErrLocationNotFound when the device has never reported.
func (s *Store) LatestLocation(ctx context.Context, deviceID string) (*domainLocation.Record, error) {
	rec, err := s.locations.LatestByDevice(ctx, deviceID)
	if errors.Is(err, domainLocation.ErrLocationNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, queryError(err)
	}
	return rec, nil
}

// ResolveAccessCode maps an enrollment code to the device it was issued for.
func (s *Store) ResolveAccessCode(ctx context.Context, code string) (*domainDevice.Device, error) {
	grant, err := s.codes.GetByCode(ctx, code)
	if errors.Is(err, domainDevice.ErrAccessCodeNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, queryError(err)
	}
	return s.GetDevice(ctx, grant.DeviceID)
}

func (s *Store) DeleteDevice(ctx context.Context, d *domainDevice.Device) error {
	if err := s.devices.Delete(ctx, d.ID); err != nil {
		return deleteError(err)
	}
	s.publish(ctx, feed.Devices, feed.OpRemoved, d.Owner, d.ID, nil)
	return nil
}

func (s *Store) DeleteAccessCode(ctx context.Context, code *domainDevice.AccessCode) error {
	if err := s.codes.Delete(ctx, code.Code); err != nil {
		return deleteError(err)
	}
	s.publish(ctx, feed.AccessCodes, feed.OpRemoved, code.Owner, code.Code, nil)
	return nil
}

func (s *Store) DeleteLocation(ctx context.Context, rec *domainLocation.Record) error {
	if err := s.locations.Delete(ctx, rec.ID); err != nil {
		return deleteError(err)
	}
	s.publish(ctx, feed.Locations, feed.OpRemoved, rec.Owner, locationKey(rec.ID), nil)
	return nil
}

// publish never fails the write it follows; a lost change only affects live queries.
func (s *Store) publish(ctx context.Context, coll feed.Collection, op feed.Op, owner uuid.UUID, key string, doc interface{}) {
	change, err := feed.NewChange(coll, op, owner, key, doc)
	if err == nil {
		err = s.broker.Publish(ctx, change)
	}
	if err != nil {
		logger.Error("Failed to publish change",
			zap.String("collection", string(coll)),
			zap.String("op", string(op)),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func locationKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
