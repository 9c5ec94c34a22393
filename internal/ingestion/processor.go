package ingestion

import (
	"context"
	"errors"
	"sync"
	"time"

	"device-tracker/internal/domain/device"
	"device-tracker/internal/domain/location"
	"device-tracker/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrUnknownAccessCode = errors.New("unknown access code")
	ErrQueueFull         = errors.New("ingestion queue is full")
	ErrProcessorStopped  = errors.New("ingestion processor is stopped")
)

// LocationWriter is the part of the record store ingestion needs.
type LocationWriter interface {
	ResolveAccessCode(ctx context.Context, code string) (*device.Device, error)
	AppendLocation(ctx context.Context, rec *location.Record) error
}

// Processor resolves access codes and appends location records, either
// synchronously through Ingest or from a bounded queue drained by workers.
type Processor struct {
	store LocationWriter

	workerCount  int
	writeTimeout time.Duration
	queue        chan *LocationMessage

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool

	metrics *MetricsTracker
	log     *zap.Logger
}

func NewProcessor(store LocationWriter, workerCount, bufferSize int) *Processor {
	if workerCount <= 0 {
		workerCount = 1
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		store:        store,
		workerCount:  workerCount,
		writeTimeout: 5 * time.Second,
		queue:        make(chan *LocationMessage, bufferSize),
		ctx:          ctx,
		cancel:       cancel,
		metrics:      NewMetricsTracker(),
		log:          logger.Named("ingestion"),
	}
}

func (p *Processor) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.log.Info("Ingestion processor started",
		zap.Int("workers", p.workerCount),
		zap.Int("buffer", cap(p.queue)),
	)
}

// Stop rejects new messages, drains what is queued and waits for the workers.
func (p *Processor) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
	p.log.Info("Ingestion processor stopped")
}

// Enqueue validates msg and queues it for a worker. It never blocks.
func (p *Processor) Enqueue(msg *LocationMessage) error {
	p.metrics.Update(func(m *IngestMetrics) { m.MessagesReceived++ })

	if err := ValidateLocationMessage(msg); err != nil {
		p.metrics.Update(func(m *IngestMetrics) { m.MessagesRejected++ })
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrProcessorStopped
	}

	select {
	case p.queue <- msg:
		p.metrics.Update(func(m *IngestMetrics) { m.QueueDepth = len(p.queue) })
		return nil
	default:
		p.log.Warn("Ingestion queue full, dropping message",
			zap.String("event", "ingest_dropped"),
		)
		p.metrics.Update(func(m *IngestMetrics) { m.MessagesFailed++ })
		return ErrQueueFull
	}
}

// Ingest validates and writes msg before returning the stored record.
func (p *Processor) Ingest(ctx context.Context, msg *LocationMessage) (*location.Record, error) {
	p.metrics.Update(func(m *IngestMetrics) { m.MessagesReceived++ })

	if err := ValidateLocationMessage(msg); err != nil {
		p.metrics.Update(func(m *IngestMetrics) { m.MessagesRejected++ })
		return nil, err
	}
	return p.process(ctx, msg)
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(p.ctx, p.writeTimeout)
		if _, err := p.process(ctx, msg); err != nil {
			p.log.Warn("Failed to ingest location",
				zap.Int("worker", id),
				zap.Error(err),
			)
		}
		cancel()
		p.metrics.Update(func(m *IngestMetrics) { m.QueueDepth = len(p.queue) })
	}
}

func (p *Processor) process(ctx context.Context, msg *LocationMessage) (*location.Record, error) {
	start := time.Now()

	d, err := p.store.ResolveAccessCode(ctx, msg.AccessCode)
	if errors.Is(err, device.ErrAccessCodeNotFound) || errors.Is(err, device.ErrDeviceNotFound) {
		p.metrics.Update(func(m *IngestMetrics) { m.MessagesRejected++ })
		return nil, ErrUnknownAccessCode
	}
	if err != nil {
		p.metrics.Update(func(m *IngestMetrics) { m.MessagesFailed++ })
		return nil, err
	}

	rec := &location.Record{
		DeviceID:   d.ID,
		Owner:      d.Owner,
		Latitude:   msg.Latitude,
		Longitude:  msg.Longitude,
		Accuracy:   msg.Accuracy,
		DeviceName: msg.DeviceName,
	}
	if msg.ReportedAt != nil {
		reported := msg.ReportedAt.UTC()
		rec.ReportedAt = &reported
	}
	if rec.DeviceName == nil {
		name := d.Name
		rec.DeviceName = &name
	}

	if err := p.store.AppendLocation(ctx, rec); err != nil {
		p.metrics.Update(func(m *IngestMetrics) { m.MessagesFailed++ })
		return nil, err
	}

	took := time.Since(start)
	p.metrics.Update(func(m *IngestMetrics) { m.recordSuccess(took) })
	p.log.Debug("Location ingested",
		zap.String("device_id", rec.DeviceID),
		zap.Int64("record_id", rec.ID),
		zap.Duration("took", took),
	)
	return rec, nil
}

func (p *Processor) GetMetrics() IngestMetrics {
	return p.metrics.Snapshot()
}
