package feed

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
)

func receive(t *testing.T, sub *Subscription) Change {
	t.Helper()
	select {
	case c, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		return c
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestMemoryBrokerFiltersByCollectionAndOwner(t *testing.T) {
	b := NewMemoryBroker(8)
	defer b.Close()

	alice, bob := uuid.New(), uuid.New()
	sub := b.Subscribe(Filter{Collection: Locations, Owner: alice})
	defer sub.Close()

	ctx := context.Background()
	for _, c := range []Change{
		{Collection: Devices, Op: OpAdded, Owner: alice, Key: "d1"},
		{Collection: Locations, Op: OpAdded, Owner: bob, Key: "1"},
		{Collection: Locations, Op: OpAdded, Owner: alice, Key: "2"},
	} {
		if err := b.Publish(ctx, c); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	got := receive(t, sub)
	if got.Key != "2" {
		t.Fatalf("got key %q, want 2", got.Key)
	}

	select {
	case c := <-sub.Events():
		t.Fatalf("unexpected extra change %+v", c)
	default:
	}
}

func TestMemoryBrokerPreservesPublishOrder(t *testing.T) {
	b := NewMemoryBroker(16)
	defer b.Close()

	sub := b.Subscribe(Filter{})
	defer sub.Close()

	keys := []string{"a", "b", "c", "d"}
	for _, k := range keys {
		_ = b.Publish(context.Background(), Change{Collection: Locations, Key: k})
	}
	for _, want := range keys {
		if got := receive(t, sub); got.Key != want {
			t.Fatalf("got %q, want %q", got.Key, want)
		}
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	b := NewMemoryBroker(1)
	sub := b.Subscribe(Filter{})

	sub.Close()
	sub.Close()

	if _, ok := <-sub.Events(); ok {
		t.Fatal("expected closed channel after Close")
	}
	if n := b.Subscribers(); n != 0 {
		t.Fatalf("subscribers = %d, want 0", n)
	}

	b.Close()
	sub.Close()
}

func TestMemoryBrokerKeepsChangesForSlowSubscriber(t *testing.T) {
	b := NewMemoryBroker(1)
	defer b.Close()

	sub := b.Subscribe(Filter{})
	defer sub.Close()

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		if err := b.Publish(ctx, Change{Key: strconv.Itoa(i)}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	for i := 0; i < 100; i++ {
		if got := receive(t, sub); got.Key != strconv.Itoa(i) {
			t.Fatalf("got %q, want %d", got.Key, i)
		}
	}
	if err := sub.Err(); err != nil {
		t.Fatalf("Err = %v", err)
	}
}

func TestMemoryBrokerEndsLaggedSubscriber(t *testing.T) {
	b := NewMemoryBroker(1, WithMaxPending(4))
	defer b.Close()

	slow := b.Subscribe(Filter{Collection: Locations})
	defer slow.Close()
	other := b.Subscribe(Filter{Collection: Devices})
	defer other.Close()

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		if err := b.Publish(ctx, Change{Collection: Locations, Key: strconv.Itoa(i)}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	deadline := time.After(time.Second)
	for open := true; open; {
		select {
		case _, open = <-slow.Events():
		case <-deadline:
			t.Fatal("lagged subscription was not closed")
		}
	}
	if !errors.Is(slow.Err(), ErrSubscriberLagged) {
		t.Fatalf("Err = %v, want ErrSubscriberLagged", slow.Err())
	}
	if n := b.Subscribers(); n != 1 {
		t.Fatalf("subscribers = %d, want 1", n)
	}

	_ = b.Publish(ctx, Change{Collection: Devices, Key: "d1"})
	if got := receive(t, other); got.Key != "d1" {
		t.Fatalf("got %q, want d1", got.Key)
	}
}

func TestMemoryBrokerClosed(t *testing.T) {
	b := NewMemoryBroker(1)
	b.Close()

	if err := b.Publish(context.Background(), Change{}); !errors.Is(err, ErrBrokerClosed) {
		t.Fatalf("expected ErrBrokerClosed, got %v", err)
	}

	sub := b.Subscribe(Filter{})
	if _, ok := <-sub.Events(); ok {
		t.Fatal("subscription on closed broker should be closed")
	}
}

func TestChangePayloadRoundTrip(t *testing.T) {
	type doc struct {
		Name string `json:"name"`
	}
	c, err := NewChange(Devices, OpAdded, uuid.New(), "d1", doc{Name: "Truck"})
	if err != nil {
		t.Fatalf("NewChange: %v", err)
	}

	var out doc
	if err := c.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Name != "Truck" {
		t.Fatalf("name = %q", out.Name)
	}
}
