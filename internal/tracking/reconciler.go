// Package tracking keeps one marker and one append-only trail per device on a
// map Surface, driven by a stream of location records.
//
// A Reconciler is owned by a single goroutine. None of its methods lock.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"device-tracker/internal/domain/location"

	"github.com/dustin/go-humanize"
)

// DefaultZoom is the close zoom level used whenever the view recenters on a device.
const DefaultZoom = 15

// ErrNoLocationData is returned by CenterOnDevice when the device has never reported.
var ErrNoLocationData = errors.New("no location data available for this device")

// LatestQuerier looks up the newest location record of a device.
type LatestQuerier interface {
	LatestLocation(ctx context.Context, deviceID string) (*location.Record, error)
}

// MarkerState is the overlay state of one device.
type MarkerState struct {
	DeviceID string
	Position location.Point
	Popup    string
	Trail    []location.Point
	Color    string
}

type Reconciler struct {
	surface Surface
	latest  LatestQuerier
	zoom    int
	now     func() time.Time
	pick    func() string

	markers map[string]*MarkerState
	// centered survives Detach so a device recenters once per reconciler lifetime.
	centered map[string]struct{}
}

type Option func(*Reconciler)

func WithZoom(zoom int) Option {
	return func(r *Reconciler) {
		if zoom > 0 {
			r.zoom = zoom
		}
	}
}

// WithClock sets the reference time for the relative part of popup text.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

func WithColorPicker(pick func() string) Option {
	return func(r *Reconciler) { r.pick = pick }
}

func NewReconciler(surface Surface, latest LatestQuerier, opts ...Option) *Reconciler {
	r := &Reconciler{
		surface:  surface,
		latest:   latest,
		zoom:     DefaultZoom,
		now:      time.Now,
		pick:     func() string { return Palette[rand.IntN(len(Palette))] },
		markers:  make(map[string]*MarkerState),
		centered: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply folds one location record into the overlay state. Records are never
// reordered: an out-of-order or duplicate record still appends a trail point.
func (r *Reconciler) Apply(rec *location.Record) {
	r.apply(rec)
}

// apply reports whether it recentered the view.
func (r *Reconciler) apply(rec *location.Record) (recentered bool) {
	pos := rec.Point()
	popup := r.popupText(rec)

	if m, ok := r.markers[rec.DeviceID]; ok {
		m.Position = pos
		m.Popup = popup
		m.Trail = append(m.Trail, pos)

		r.surface.MoveMarker(markerOverlay(rec.DeviceID), pos)
		r.surface.BindPopup(markerOverlay(rec.DeviceID), popup)
		r.surface.ExtendPolyline(trailOverlay(rec.DeviceID), pos)
		return false
	}

	m := &MarkerState{
		DeviceID: rec.DeviceID,
		Position: pos,
		Popup:    popup,
		Trail:    []location.Point{pos},
		Color:    r.pick(),
	}
	r.markers[rec.DeviceID] = m

	r.surface.AddMarker(markerOverlay(rec.DeviceID), pos, rec.Label())
	r.surface.BindPopup(markerOverlay(rec.DeviceID), popup)
	r.surface.AddPolyline(trailOverlay(rec.DeviceID), []location.Point{pos}, m.Color)

	if _, done := r.centered[rec.DeviceID]; !done && len(m.Trail) == 1 {
		r.centered[rec.DeviceID] = struct{}{}
		r.surface.SetView(pos, r.zoom)
		return true
	}
	return false
}

// Center recenters on an existing marker and reports whether one existed.
func (r *Reconciler) Center(deviceID string) bool {
	m, ok := r.markers[deviceID]
	if !ok {
		return false
	}
	r.surface.SetView(m.Position, r.zoom)
	return true
}

// ShowLatest applies a record fetched on demand and makes sure the view ends on it.
func (r *Reconciler) ShowLatest(rec *location.Record) {
	if !r.apply(rec) {
		r.surface.SetView(rec.Point(), r.zoom)
	}
}

// CenterOnDevice recenters on deviceID, querying its latest location when no
// marker exists. The map is left untouched when the lookup fails.
func (r *Reconciler) CenterOnDevice(ctx context.Context, deviceID string) error {
	if r.Center(deviceID) {
		return nil
	}

	rec, err := r.latest.LatestLocation(ctx, deviceID)
	if errors.Is(err, location.ErrLocationNotFound) || (err == nil && rec == nil) {
		return ErrNoLocationData
	}
	if err != nil {
		return fmt.Errorf("failed to load latest location: %w", err)
	}

	r.ShowLatest(rec)
	return nil
}

// Detach removes the device's overlays and forgets its state.
func (r *Reconciler) Detach(deviceID string) {
	if _, ok := r.markers[deviceID]; !ok {
		return
	}
	r.surface.RemoveOverlay(markerOverlay(deviceID))
	r.surface.RemoveOverlay(trailOverlay(deviceID))
	delete(r.markers, deviceID)
}

// Reset detaches every device but remembers which ones were centered, so a
// replayed stream does not move the view again.
func (r *Reconciler) Reset() {
	for id := range r.markers {
		r.Detach(id)
	}
}

// Teardown detaches every device.
func (r *Reconciler) Teardown() {
	r.Reset()
	r.centered = make(map[string]struct{})
}

func (r *Reconciler) Marker(deviceID string) (*MarkerState, bool) {
	m, ok := r.markers[deviceID]
	return m, ok
}

func (r *Reconciler) Markers() int {
	return len(r.markers)
}

func (r *Reconciler) popupText(rec *location.Record) string {
	return fmt.Sprintf("%s\n%s (%s)\nAccuracy: %.1f meters",
		rec.Label(),
		rec.Timestamp.Local().Format(time.RFC1123),
		humanize.RelTime(rec.Timestamp, r.now(), "ago", "from now"),
		rec.Accuracy,
	)
}
