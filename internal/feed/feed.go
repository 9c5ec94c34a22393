// Package feed carries change notifications from store writers to live queries.
//
// A Broker fans every published Change out to the subscriptions whose Filter
// matches it. Delivery order within one subscription follows publish order as
// seen by the broker; different subscriptions are not ordered relative to one
// another.
package feed

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Collection string

const (
	Devices     Collection = "devices"
	AccessCodes Collection = "device_access"
	Locations   Collection = "locations"
)

type Op string

const (
	OpAdded    Op = "added"
	OpModified Op = "modified"
	OpRemoved  Op = "removed"
)

// Change describes one document-level mutation.
type Change struct {
	Collection Collection      `json:"collection"`
	Op         Op              `json:"op"`
	Owner      uuid.UUID       `json:"owner"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// NewChange encodes v as the change payload.
func NewChange(collection Collection, op Op, owner uuid.UUID, key string, v interface{}) (Change, error) {
	c := Change{Collection: collection, Op: op, Owner: owner, Key: key}
	if v == nil {
		return c, nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return Change{}, err
	}
	c.Payload = payload
	return c, nil
}

// Decode unmarshals the payload into v.
func (c Change) Decode(v interface{}) error {
	return json.Unmarshal(c.Payload, v)
}

// Filter selects the changes a subscription receives. Zero fields match everything.
type Filter struct {
	Collection Collection
	Owner      uuid.UUID
}

func (f Filter) Match(c Change) bool {
	if f.Collection != "" && f.Collection != c.Collection {
		return false
	}
	if f.Owner != uuid.Nil && f.Owner != c.Owner {
		return false
	}
	return true
}

// Broker is implemented by MemoryBroker and PostgresBroker.
type Broker interface {
	Publish(ctx context.Context, change Change) error
	Subscribe(filter Filter) *Subscription
}

// Subscription is a cancellable stream of changes. Close is the detach handle
// and may be called any number of times.
type Subscription struct {
	events <-chan Change
	once   sync.Once
	detach func()
	err    func() error
}

func NewSubscription(events <-chan Change, detach func(), err func() error) *Subscription {
	return &Subscription{events: events, detach: detach, err: err}
}

func (s *Subscription) Events() <-chan Change {
	return s.events
}

// Err reports why the broker ended the stream. It is nil while the stream is
// open and after a Close or broker shutdown; ErrSubscriberLagged means changes
// were lost and the consumer has to resynchronise.
func (s *Subscription) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err()
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.detach != nil {
			s.detach()
		}
	})
}
