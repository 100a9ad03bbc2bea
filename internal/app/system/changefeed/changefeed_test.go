package changefeed

import (
	"testing"
	"time"
)

func recvEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		if !ok {
			t.Fatal("subscription channel closed unexpectedly")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestPublishSubscribe(t *testing.T) {
	f := New(8, nil)
	defer f.Close()

	sub := f.Subscribe()
	defer sub.Cancel()

	f.Publish(Event{Entity: "projects", Op: OpCreated, ID: "abc", Slug: "hillside-residence"})

	ev := recvEvent(t, sub)
	if ev.Entity != "projects" || ev.Op != OpCreated || ev.Slug != "hillside-residence" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.At.IsZero() {
		t.Error("expected At to be stamped")
	}
}

func TestMultipleSubscribersSeeAllEntities(t *testing.T) {
	f := New(8, nil)
	defer f.Close()

	a := f.Subscribe()
	defer a.Cancel()
	b := f.Subscribe()
	defer b.Cancel()

	f.Publish(Event{Entity: "projects", Op: OpCreated, ID: "1"})
	f.Publish(Event{Entity: "job_openings", Op: OpDeleted, ID: "2"})

	for _, sub := range []*Subscription{a, b} {
		first := recvEvent(t, sub)
		second := recvEvent(t, sub)
		if first.Entity != "projects" || second.Entity != "job_openings" {
			t.Errorf("expected both entity streams on one subscription, got %q then %q",
				first.Entity, second.Entity)
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	f := New(8, nil)
	defer f.Close()

	sub := f.Subscribe()
	sub.Cancel()
	sub.Cancel() // idempotent

	// Channel is closed on unsubscribe.
	select {
	case _, ok := <-sub.C:
		if ok {
			t.Error("expected closed channel after Cancel")
		}
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for channel close")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	f := New(1, nil)
	defer f.Close()

	// No subscribers draining and a tiny buffer: the extra publishes
	// must drop, not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			f.Publish(Event{Entity: "partners", Op: OpUpdated, ID: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with full buffer")
	}
}

func TestNilFeedPublish(t *testing.T) {
	var f *Feed
	f.Publish(Event{Entity: "services", Op: OpCreated}) // must not panic
}
