package realtime_test

import (
	"testing"

	"tiendajson/internal/domain"
	"tiendajson/internal/realtime"
)

func TestHub_FanOut(t *testing.T) {
	h := realtime.NewHub(4)
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelB()

	if n := h.Publish(domain.Event{Name: domain.EventProducts}); n != 2 {
		t.Fatalf("want 2 deliveries, got %d", n)
	}
	if e := <-a; e.Name != domain.EventProducts {
		t.Fatalf("a got %+v", e)
	}
	if e := <-b; e.Name != domain.EventProducts {
		t.Fatalf("b got %+v", e)
	}

	cancelA()
	cancelA()
	if _, open := <-a; open {
		t.Fatal("channel should be closed after cancel")
	}
	if h.Subscribers() != 1 {
		t.Fatalf("want 1 subscriber, got %d", h.Subscribers())
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := realtime.NewHub(1)
	_, cancel := h.Subscribe()
	defer cancel()

	if n := h.Publish(domain.Event{Name: domain.EventCarts}); n != 1 {
		t.Fatalf("first publish: %d", n)
	}
	if n := h.Publish(domain.Event{Name: domain.EventCarts}); n != 0 {
		t.Fatalf("full buffer should drop, got %d deliveries", n)
	}
}

func TestHub_CloseEndsSubscriptions(t *testing.T) {
	h := realtime.NewHub(1)
	ch, cancel := h.Subscribe()
	h.Close()
	if _, open := <-ch; open {
		t.Fatal("subscription still open after Close")
	}
	cancel()

	late, _ := h.Subscribe()
	if _, open := <-late; open {
		t.Fatal("subscribe after Close should return a closed channel")
	}
	if n := h.Publish(domain.Event{}); n != 0 {
		t.Fatalf("publish after close delivered %d", n)
	}
}
