package ingestion

import (
	"sync"
	"time"
)

// IngestMetrics tracks ingestion performance
type IngestMetrics struct {
	MessagesReceived      int64         `json:"messages_received"`
	MessagesProcessed     int64         `json:"messages_processed"`
	MessagesFailed        int64         `json:"messages_failed"`
	MessagesRejected      int64         `json:"messages_rejected"`
	RecordsInserted       int64         `json:"records_inserted"`
	LastProcessedAt       time.Time     `json:"last_processed_at"`
	AverageProcessingTime time.Duration `json:"average_processing_time"`
	QueueDepth            int           `json:"queue_depth"`
}

// MetricsTracker provides a goroutine-safe wrapper around IngestMetrics.
type MetricsTracker struct {
	mu        sync.RWMutex
	metrics   IngestMetrics
	listeners []func(IngestMetrics)
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{}
}

// Update applies fn under the lock and notifies listeners with the result.
func (t *MetricsTracker) Update(fn func(*IngestMetrics)) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fn(&t.metrics)
	snapshot := t.metrics
	for _, listener := range t.listeners {
		listener(snapshot)
	}
}

func (t *MetricsTracker) Snapshot() IngestMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}

func (t *MetricsTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metrics = IngestMetrics{}
}

// OnChange registers a callback invoked whenever metrics are updated.
func (t *MetricsTracker) OnChange(listener func(IngestMetrics)) {
	if listener == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

func (m *IngestMetrics) recordSuccess(took time.Duration) {
	m.MessagesProcessed++
	m.RecordsInserted++
	m.LastProcessedAt = time.Now()
	if m.AverageProcessingTime == 0 {
		m.AverageProcessingTime = took
	} else {
		m.AverageProcessingTime = (m.AverageProcessingTime + took) / 2
	}
}
