// Package dashboard runs one live map session per browser connection.
//
// A Session owns its Reconciler, device list and live queries. All of that
// state is touched from the Run goroutine only; slow work runs on helper
// goroutines that hand their results back through post.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"device-tracker/internal/domain/device"
	"device-tracker/internal/domain/location"
	"device-tracker/internal/feed"
	"device-tracker/internal/logger"
	"device-tracker/internal/store"
	"device-tracker/internal/tracking"
	devuc "device-tracker/internal/usecase/device"
	appErrors "device-tracker/pkg/errors"
	"device-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errSessionClosed = errors.New("dashboard session closed")

// Transport carries messages between a Session and its browser.
type Transport interface {
	Send(msg Message) error
	// Receive blocks for the next command; it fails once the peer is gone or Close was called.
	Receive() (Command, error)
	Close() error
}

type Authenticator interface {
	Authenticate(token string) (*utils.Claims, error)
}

type LocationWatcher interface {
	WatchLocations(ctx context.Context, owner uuid.UUID) (*store.Subscription[location.Record], error)
}

type Deps struct {
	Auth         Authenticator
	Locations    LocationWatcher
	Registry     *devuc.Registry
	Orchestrator *devuc.Orchestrator
}

type Options struct {
	Zoom      int
	AlertTTL  time.Duration
	LoginPath string
}

func (o Options) withDefaults() Options {
	if o.Zoom <= 0 {
		o.Zoom = tracking.DefaultZoom
	}
	if o.AlertTTL <= 0 {
		o.AlertTTL = 5 * time.Second
	}
	if o.LoginPath == "" {
		o.LoginPath = "/login.html"
	}
	return o
}

type Session struct {
	deps      Deps
	opts      Options
	transport Transport
	token     string
	log       *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	tasks  chan func()
	done   chan struct{}

	claims     *utils.Claims
	reconciler *tracking.Reconciler
	devices    *deviceList
	locations  *store.Subscription[location.Record]
	deviceSub  *store.Subscription[device.Device]
	pending    map[string]chan bool
	alertSeq   int
	teardown   sync.Once
}

func NewSession(deps Deps, opts Options, transport Transport, token string) *Session {
	return &Session{
		deps:      deps,
		opts:      opts.withDefaults(),
		transport: transport,
		token:     token,
		log:       logger.Named("dashboard"),
		tasks:     make(chan func(), 32),
		done:      make(chan struct{}),
		devices:   newDeviceList(),
		pending:   make(map[string]chan bool),
	}
}

// Run gates the session, then serves it until the client leaves, signs out,
// the token expires or ctx ends. The transport is closed on return.
func (s *Session) Run(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	defer close(s.done)
	defer s.transport.Close()
	defer s.cancel()

	claims, err := s.deps.Auth.Authenticate(s.token)
	if err != nil {
		s.log.Info("Dashboard session rejected",
			zap.String("event", "dashboard_unauthenticated"),
		)
		return s.transport.Send(Message{Type: TypeRedirect, Data: Redirect{Location: s.opts.LoginPath}})
	}
	s.claims = claims
	s.log = s.log.With(zap.String("user_id", claims.UserID.String()))

	if err := s.transport.Send(Message{Type: TypeSignedIn, Data: SignedIn{UserID: claims.UserID.String(), Email: claims.Email}}); err != nil {
		return err
	}

	defer s.close()
	if err := s.init(); err != nil {
		s.alert(AlertDanger, "Error loading dashboard")
		return err
	}

	s.log.Info("Dashboard session started", zap.String("event", "dashboard_signed_in"))
	return s.loop()
}

func (s *Session) init() error {
	owner := s.claims.UserID

	s.reconciler = tracking.NewReconciler(
		&mapSurface{emit: s.emitMap},
		&ownedLatest{registry: s.deps.Registry, owner: owner},
		tracking.WithZoom(s.opts.Zoom),
	)

	locs, err := s.deps.Locations.WatchLocations(s.ctx, owner)
	if err != nil {
		return err
	}
	s.locations = locs

	devs, err := s.deps.Registry.Watch(s.ctx, owner)
	if err != nil {
		return err
	}
	s.deviceSub = devs

	// the device list renders even when the owner has no devices yet
	s.send(TypeDevices, s.devices.render())
	return nil
}

func (s *Session) loop() error {
	inbound := s.readCommands()
	locations := s.locations.Events()
	devices := s.deviceSub.Events()

	var expiry <-chan time.Time
	if s.claims.ExpiresAt != nil {
		timer := time.NewTimer(time.Until(s.claims.ExpiresAt.Time))
		defer timer.Stop()
		expiry = timer.C
	}

	for {
		select {
		case <-s.ctx.Done():
			return nil

		case ev, ok := <-locations:
			if !ok {
				locations = s.reopenLocations()
				continue
			}
			if ev.Op != feed.OpRemoved && ev.Doc != nil {
				s.reconciler.Apply(ev.Doc)
			}

		case ev, ok := <-devices:
			if !ok {
				devices = s.reopenDevices()
				continue
			}
			s.devices.apply(ev)
			s.send(TypeDevices, s.devices.render())

		case cmd, ok := <-inbound:
			if !ok {
				s.log.Debug("Dashboard client disconnected")
				return nil
			}
			if signedOut := s.dispatch(cmd); signedOut {
				return nil
			}

		case fn := <-s.tasks:
			fn()

		case <-expiry:
			s.signOut("session expired")
			return nil
		}
	}
}

// reopenLocations replaces a location query that lost changes. The map is
// rebuilt from the new snapshot. It returns nil when the query ended for good.
func (s *Session) reopenLocations() <-chan store.Event[location.Record] {
	if !errors.Is(s.locations.Err(), feed.ErrSubscriberLagged) || s.ctx.Err() != nil {
		return nil
	}
	s.log.Warn("Location stream lagged, reloading", zap.String("event", "dashboard_resync"))

	s.locations.Close()
	s.reconciler.Reset()

	locs, err := s.deps.Locations.WatchLocations(s.ctx, s.claims.UserID)
	if err != nil {
		s.log.Error("Failed to reopen location stream", zap.Error(err))
		s.alert(AlertDanger, "Error loading device locations")
		return nil
	}
	s.locations = locs
	return locs.Events()
}

func (s *Session) reopenDevices() <-chan store.Event[device.Device] {
	if !errors.Is(s.deviceSub.Err(), feed.ErrSubscriberLagged) || s.ctx.Err() != nil {
		return nil
	}
	s.log.Warn("Device stream lagged, reloading", zap.String("event", "dashboard_resync"))

	s.deviceSub.Close()
	s.devices = newDeviceList()

	devs, err := s.deps.Registry.Watch(s.ctx, s.claims.UserID)
	if err != nil {
		s.log.Error("Failed to reopen device stream", zap.Error(err))
		s.alert(AlertDanger, "Error loading devices")
		return nil
	}
	s.deviceSub = devs
	s.send(TypeDevices, s.devices.render())
	return devs.Events()
}

// dispatch handles one command and reports whether the session signed out.
func (s *Session) dispatch(cmd Command) bool {
	switch cmd.Type {
	case CmdAddDevice:
		s.addDevice(cmd.Name)
	case CmdDeleteDevice:
		s.deleteDevice(cmd.DeviceID)
	case CmdViewDevice:
		s.viewDevice(cmd.DeviceID)
	case CmdConfirm:
		if answer, ok := s.pending[cmd.Token]; ok {
			delete(s.pending, cmd.Token)
			answer <- cmd.Accepted
		}
	case CmdLogout:
		s.signOut("signed out")
		return true
	default:
		s.log.Debug("Ignoring unknown dashboard command", zap.String("type", cmd.Type))
	}
	return false
}

func (s *Session) addDevice(name string) {
	owner := s.claims.UserID
	go func() {
		res, err := s.deps.Registry.Register(s.ctx, owner, name)
		s.post(func() {
			switch {
			case appErrors.HasCode(err, appErrors.CodeValidation):
				var appErr *appErrors.AppError
				errors.As(err, &appErr)
				s.alert(AlertWarning, appErr.Message)
			case err != nil:
				s.log.Error("Failed to add device", zap.Error(err))
				s.alert(AlertDanger, "Error adding device")
			default:
				s.send(TypeDeviceAdded, DeviceAdded{DeviceID: res.DeviceID, AccessCode: res.AccessCode})
				s.alert(AlertSuccess, "Device added successfully")
			}
		})
	}()
}

func (s *Session) deleteDevice(deviceID string) {
	owner := s.claims.UserID
	go func() {
		out, err := s.deps.Orchestrator.Delete(s.ctx, owner, deviceID, &sessionConfirmer{s: s}, &loopDetacher{s: s})
		s.post(func() {
			switch {
			case err != nil:
				s.log.Error("Failed to delete device", zap.String("device_id", deviceID), zap.Error(err))
				s.alert(AlertDanger, "Error deleting device")
			case out.Declined:
			default:
				s.alert(AlertSuccess, "Device deleted successfully")
			}
		})
	}()
}

func (s *Session) viewDevice(deviceID string) {
	if s.reconciler.Center(deviceID) {
		return
	}

	latest := &ownedLatest{registry: s.deps.Registry, owner: s.claims.UserID}
	go func() {
		rec, err := latest.LatestLocation(s.ctx, deviceID)
		s.post(func() {
			switch {
			case errors.Is(err, location.ErrLocationNotFound) || (err == nil && rec == nil):
				s.alert(AlertWarning, "No location data available for this device")
			case err != nil:
				s.log.Error("Failed to load device location", zap.String("device_id", deviceID), zap.Error(err))
				s.alert(AlertDanger, "Error loading device location")
			default:
				s.reconciler.ShowLatest(rec)
			}
		})
	}()
}

// signOut detaches everything and sends the browser back to the login page.
func (s *Session) signOut(reason string) {
	s.close()
	s.send(TypeRedirect, Redirect{Location: s.opts.LoginPath, Reason: reason})
	s.log.Info("Dashboard session signed out",
		zap.String("reason", reason),
		zap.String("event", "dashboard_signed_out"),
	)
}

// close releases every live query and overlay exactly once.
func (s *Session) close() {
	s.teardown.Do(func() {
		if s.locations != nil {
			s.locations.Close()
		}
		if s.deviceSub != nil {
			s.deviceSub.Close()
		}
		if s.reconciler != nil {
			s.reconciler.Teardown()
		}
		for token, answer := range s.pending {
			delete(s.pending, token)
			answer <- false
		}
	})
}

// post schedules fn on the Run goroutine. It is dropped once the session has ended.
func (s *Session) post(fn func()) {
	select {
	case s.tasks <- fn:
	case <-s.done:
	}
}

func (s *Session) readCommands() <-chan Command {
	out := make(chan Command)
	go func() {
		defer close(out)
		for {
			cmd, err := s.transport.Receive()
			if err != nil {
				return
			}
			select {
			case out <- cmd:
			case <-s.done:
				return
			}
		}
	}()
	return out
}

func (s *Session) send(msgType string, data interface{}) {
	if err := s.transport.Send(Message{Type: msgType, Data: data}); err != nil {
		s.log.Debug("Failed to send dashboard message", zap.String("type", msgType), zap.Error(err))
	}
}

func (s *Session) emitMap(cmd MapCommand) {
	s.send(TypeMap, cmd)
}

// alert shows a message that is dismissed after the configured TTL.
func (s *Session) alert(level AlertLevel, message string) {
	s.alertSeq++
	id := s.alertSeq
	s.send(TypeAlert, Alert{ID: id, Level: level, Message: message})

	time.AfterFunc(s.opts.AlertTTL, func() {
		s.post(func() { s.send(TypeAlertDismissed, AlertDismissed{ID: id}) })
	})
}

// ownedLatest looks up a device's newest location, hiding devices of other owners.
type ownedLatest struct {
	registry *devuc.Registry
	owner    uuid.UUID
}

func (o *ownedLatest) LatestLocation(ctx context.Context, deviceID string) (*location.Record, error) {
	rec, err := o.registry.Latest(ctx, o.owner, deviceID)
	if errors.Is(err, device.ErrDeviceNotFound) {
		return nil, location.ErrLocationNotFound
	}
	return rec, err
}
