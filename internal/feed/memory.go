package feed

import (
	"context"
	"errors"
	"sync"

	"device-tracker/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrBrokerClosed     = errors.New("feed broker is closed")
	ErrSubscriberLagged = errors.New("feed subscriber fell too far behind")
)

const (
	DefaultSubscriberBuffer = 256
	DefaultMaxPending       = 1 << 16
)

// subscriber queues changes for one consumer. A pump goroutine moves them
// from the queue to ch, so Publish never waits on a slow reader.
type subscriber struct {
	filter Filter
	ch     chan Change

	mu     sync.Mutex
	queue  []Change
	lagged bool
	wake   chan struct{}
	quit   chan struct{}
	stop   sync.Once
}

func newSubscriber(filter Filter, buffer int) *subscriber {
	sub := &subscriber{
		filter: filter,
		ch:     make(chan Change, buffer),
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
	go sub.pump()
	return sub
}

// enqueue reports false once the subscriber holds maxPending undelivered changes.
func (s *subscriber) enqueue(change Change, maxPending int) bool {
	s.mu.Lock()
	if len(s.queue) >= maxPending {
		s.lagged = true
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, change)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

func (s *subscriber) pump() {
	defer close(s.ch)

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.quit:
				return
			}
		}
		next := s.queue[0]
		s.queue[0] = Change{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.ch <- next:
		case <-s.quit:
			return
		}
	}
}

func (s *subscriber) close() {
	s.stop.Do(func() { close(s.quit) })
}

func (s *subscriber) err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lagged {
		return ErrSubscriberLagged
	}
	return nil
}

type MemoryOption func(*MemoryBroker)

// WithMaxPending bounds the undelivered changes held for one subscriber. A
// subscriber that reaches it is ended with ErrSubscriberLagged.
func WithMaxPending(n int) MemoryOption {
	return func(b *MemoryBroker) {
		if n > 0 {
			b.maxPending = n
		}
	}
}

// MemoryBroker is an in-process Broker. Every matching change reaches every
// subscriber in publish order, or the subscriber is ended as lagged.
type MemoryBroker struct {
	mu         sync.RWMutex
	subs       map[uint64]*subscriber
	nextID     uint64
	buffer     int
	maxPending int
	closed     bool
}

func NewMemoryBroker(buffer int, opts ...MemoryOption) *MemoryBroker {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	b := &MemoryBroker{
		subs:       make(map[uint64]*subscriber),
		buffer:     buffer,
		maxPending: DefaultMaxPending,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *MemoryBroker) Publish(ctx context.Context, change Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var lagged []uint64

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBrokerClosed
	}
	for id, sub := range b.subs {
		if !sub.filter.Match(change) {
			continue
		}
		if !sub.enqueue(change, b.maxPending) {
			lagged = append(lagged, id)
		}
	}
	b.mu.RUnlock()

	for _, id := range lagged {
		logger.Warn("Feed subscriber lagged, ending subscription",
			zap.Uint64("subscriber", id),
			zap.String("collection", string(change.Collection)),
			zap.Int("max_pending", b.maxPending),
		)
		b.remove(id)
	}

	return nil
}

func (b *MemoryBroker) Subscribe(filter Filter) *Subscription {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		ch := make(chan Change)
		close(ch)
		return NewSubscription(ch, nil, nil)
	}
	id := b.nextID
	b.nextID++
	sub := newSubscriber(filter, b.buffer)
	b.subs[id] = sub
	b.mu.Unlock()

	return NewSubscription(sub.ch, func() { b.remove(id) }, sub.err)
}

func (b *MemoryBroker) remove(id uint64) {
	b.mu.Lock()
	sub, ok := b.subs[id]
	delete(b.subs, id)
	b.mu.Unlock()

	if ok {
		sub.close()
	}
}

// Subscribers returns the number of attached subscriptions.
func (b *MemoryBroker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close detaches every subscription and rejects further publishes.
func (b *MemoryBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.close()
	}
}
