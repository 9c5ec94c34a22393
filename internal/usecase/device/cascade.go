package device

import (
	"context"
	"fmt"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
	"device-tracker/internal/logger"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DeletePrompt = "Are you sure you want to delete this device?"

// PartialCascadeFailure is returned when at least one delete of a cascade
// failed. The deletes that succeeded are not rolled back.
type PartialCascadeFailure struct {
	DeviceID  string
	Attempted int
	Failed    int
	Err       error
}

func (e *PartialCascadeFailure) Error() string {
	return fmt.Sprintf("cascade delete of device %s: %d of %d deletes failed: %v", e.DeviceID, e.Failed, e.Attempted, e.Err)
}

func (e *PartialCascadeFailure) Unwrap() error {
	return e.Err
}

// Orchestrator removes a device with all of its access codes and location records.
type Orchestrator struct {
	store CascadeStore
}

func NewOrchestrator(s CascadeStore) *Orchestrator {
	return &Orchestrator{store: s}
}

// Delete asks for confirmation, gathers every record referencing deviceID,
// deletes them all concurrently and detaches the device's overlays only when
// every delete succeeded. overlays may be nil.
func (o *Orchestrator) Delete(
	ctx context.Context,
	owner uuid.UUID,
	deviceID string,
	confirmer Confirmer,
	overlays OverlayDetacher,
) (DeleteOutcome, error) {
	outcome := DeleteOutcome{DeviceID: deviceID}

	confirmed, err := confirmer.Confirm(ctx, DeletePrompt)
	if err != nil {
		return outcome, err
	}
	if !confirmed {
		outcome.Declined = true
		logger.Debug("Device delete declined",
			zap.String("device_id", deviceID),
			zap.String("event", "device_delete_declined"),
		)
		return outcome, nil
	}

	var (
		device    *domainDevice.Device
		codes     []*domainDevice.AccessCode
		locations []*domainLocation.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		device, err = ValidateOwnership(gctx, o.store, owner, deviceID)
		return err
	})
	g.Go(func() error {
		var err error
		codes, err = o.store.AccessCodesForDevice(gctx, deviceID)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = o.store.LocationsForDevice(gctx, deviceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return outcome, err
	}

	deletes := make([]func(context.Context) error, 0, len(codes)+len(locations)+1)
	for _, c := range codes {
		deletes = append(deletes, func(ctx context.Context) error { return o.store.DeleteAccessCode(ctx, c) })
	}
	deletes = append(deletes, func(ctx context.Context) error { return o.store.DeleteDevice(ctx, device) })
	for _, l := range locations {
		deletes = append(deletes, func(ctx context.Context) error { return o.store.DeleteLocation(ctx, l) })
	}

	errs := iter.Map(deletes, func(del *func(context.Context) error) error {
		return (*del)(ctx)
	})
	if combined := multierr.Combine(errs...); combined != nil {
		failure := &PartialCascadeFailure{
			DeviceID:  deviceID,
			Attempted: len(deletes),
			Failed:    len(multierr.Errors(combined)),
			Err:       combined,
		}
		logger.Error("Cascade delete incomplete",
			zap.String("device_id", deviceID),
			zap.Int("attempted", failure.Attempted),
			zap.Int("failed", failure.Failed),
			zap.String("event", "device_delete_partial"),
			zap.Error(combined),
		)
		return outcome, failure
	}

	if overlays != nil {
		overlays.Detach(deviceID)
	}

	outcome.AccessCodes = len(codes)
	outcome.Locations = len(locations)

	logger.Info("Device deleted",
		zap.String("device_id", deviceID),
		zap.Int("access_codes", outcome.AccessCodes),
		zap.Int("locations", outcome.Locations),
		zap.String("event", "device_deleted"),
	)

	return outcome, nil
}
