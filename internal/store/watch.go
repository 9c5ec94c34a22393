package store

import (
	"context"
	"sync"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
	"device-tracker/internal/feed"
	"device-tracker/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is one change delivered by a live query. Doc is nil for removals.
type Event[T any] struct {
	Op  feed.Op
	Key string
	Doc *T
}

// Subscription is a live query: the records matching at subscribe time arrive
// first as added events, then every later matching change. Close detaches it
// and may be called any number of times.
type Subscription[T any] struct {
	events chan Event[T]
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

func (s *Subscription[T]) Events() <-chan Event[T] {
	return s.events
}

// Err is set before Events is closed. feed.ErrSubscriberLagged means changes
// were lost and the query has to be opened again.
func (s *Subscription[T]) Err() error {
	return s.err
}

func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// WatchLocations streams the owner's location records, newest first for the snapshot.
func (s *Store) WatchLocations(ctx context.Context, owner uuid.UUID) (*Subscription[domainLocation.Record], error) {
	return watch(ctx, s.broker, feed.Filter{Collection: feed.Locations, Owner: owner},
		func(ctx context.Context) ([]Event[domainLocation.Record], error) {
			recs, err := s.LocationsForOwner(ctx, owner)
			if err != nil {
				return nil, err
			}
			out := make([]Event[domainLocation.Record], len(recs))
			for i, r := range recs {
				out[i] = Event[domainLocation.Record]{Op: feed.OpAdded, Key: locationKey(r.ID), Doc: r}
			}
			return out, nil
		},
		func(c feed.Change) (*domainLocation.Record, error) {
			var doc LocationDoc
			if err := c.Decode(&doc); err != nil {
				return nil, err
			}
			return doc.Entity(), nil
		},
	)
}

// WatchDevices streams the owner's devices in creation order.
func (s *Store) WatchDevices(ctx context.Context, owner uuid.UUID) (*Subscription[domainDevice.Device], error) {
	return watch(ctx, s.broker, feed.Filter{Collection: feed.Devices, Owner: owner},
		func(ctx context.Context) ([]Event[domainDevice.Device], error) {
			devices, err := s.ListDevices(ctx, owner)
			if err != nil {
				return nil, err
			}
			out := make([]Event[domainDevice.Device], len(devices))
			for i, d := range devices {
				out[i] = Event[domainDevice.Device]{Op: feed.OpAdded, Key: d.ID, Doc: d}
			}
			return out, nil
		},
		func(c feed.Change) (*domainDevice.Device, error) {
			var doc DeviceDoc
			if err := c.Decode(&doc); err != nil {
				return nil, err
			}
			return doc.Entity(), nil
		},
	)
}

// watch subscribes before taking the snapshot so no change is lost; added
// changes already covered by the snapshot are skipped.
func watch[T any](
	ctx context.Context,
	broker feed.Broker,
	filter feed.Filter,
	snapshot func(context.Context) ([]Event[T], error),
	decode func(feed.Change) (*T, error),
) (*Subscription[T], error) {
	changes := broker.Subscribe(filter)

	initial, err := snapshot(ctx)
	if err != nil {
		changes.Close()
		return nil, err
	}

	seen := make(map[string]struct{}, len(initial))
	for _, ev := range initial {
		seen[ev.Key] = struct{}{}
	}

	runCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		events: make(chan Event[T]),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.events)
		defer changes.Close()

		for _, ev := range initial {
			select {
			case sub.events <- ev:
			case <-runCtx.Done():
				return
			}
		}

		for {
			select {
			case <-runCtx.Done():
				return
			case c, ok := <-changes.Events():
				if !ok {
					sub.err = changes.Err()
					return
				}
				if c.Op == feed.OpAdded {
					if _, dup := seen[c.Key]; dup {
						delete(seen, c.Key)
						continue
					}
				}

				ev := Event[T]{Op: c.Op, Key: c.Key}
				if c.Op != feed.OpRemoved {
					doc, err := decode(c)
					if err != nil {
						logger.Warn("Dropping undecodable change",
							zap.String("collection", string(c.Collection)),
							zap.String("key", c.Key),
							zap.Error(err),
						)
						continue
					}
					ev.Doc = doc
				}

				select {
				case sub.events <- ev:
				case <-runCtx.Done():
					return
				}
			}
		}
	}()

	return sub, nil
}
