package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harmonikfm/stagehand/internal/domain"
)

// TestPublishSubscribe tests basic publish/subscribe functionality.
func TestPublishSubscribe(t *testing.T) {
	bus := NewSyncBus(nil)
	defer func() { _ = bus.Close() }()

	var received domain.Event
	var callCount int

	subID := bus.Subscribe(domain.EventSongSelected, func(event domain.Event) {
		received = event
		callCount++
	})

	if subID == "" {
		t.Fatal("Subscribe returned empty subscription ID")
	}

	song := domain.Song{ID: "huling-sandali", Title: "Huling Sandali"}
	bus.Publish(domain.NewSongSelectedEvent(song))

	if callCount != 1 {
		t.Errorf("Expected handler to be called once, got %d", callCount)
	}

	if received == nil {
		t.Fatal("Handler did not receive event")
	}

	if received.Type() != domain.EventSongSelected {
		t.Errorf("Expected EventSongSelected, got %s", received.Type())
	}

	selected := received.(domain.SongSelectedEvent)
	if selected.Song.ID != "huling-sandali" {
		t.Errorf("Expected song ID huling-sandali, got %s", selected.Song.ID)
	}
}

// TestMultipleSubscribers tests multiple handlers for the same event type.
func TestMultipleSubscribers(t *testing.T) {
	bus := NewSyncBus(nil)
	defer func() { _ = bus.Close() }()

	var callCount1, callCount2 int32

	bus.Subscribe(domain.EventVolumeChanged, func(event domain.Event) {
		atomic.AddInt32(&callCount1, 1)
	})
	bus.Subscribe(domain.EventVolumeChanged, func(event domain.Event) {
		atomic.AddInt32(&callCount2, 1)
	})

	bus.Publish(domain.NewVolumeChangedEvent(0.5))

	if atomic.LoadInt32(&callCount1) != 1 {
		t.Errorf("Handler 1: expected 1 call, got %d", callCount1)
	}
	if atomic.LoadInt32(&callCount2) != 1 {
		t.Errorf("Handler 2: expected 1 call, got %d", callCount2)
	}
}

// TestUnsubscribe tests unsubscribing handlers.
func TestUnsubscribe(t *testing.T) {
	bus := NewSyncBus(nil)
	defer func() { _ = bus.Close() }()

	var callCount int32

	subID := bus.Subscribe(domain.EventQueueChanged, func(event domain.Event) {
		atomic.AddInt32(&callCount, 1)
	})

	bus.Publish(domain.NewQueueChangedEvent(nil))

	if atomic.LoadInt32(&callCount) != 1 {
		t.Errorf("Expected 1 call before unsubscribe, got %d", callCount)
	}

	bus.Unsubscribe(subID)
	bus.Publish(domain.NewQueueChangedEvent(nil))

	if atomic.LoadInt32(&callCount) != 1 {
		t.Errorf("Expected 1 call after unsubscribe, got %d", callCount)
	}

	// Unknown IDs are a no-op
	bus.Unsubscribe("invalid-id")
	bus.Unsubscribe("")
}

// TestSubscribeAll tests wildcard subscriptions.
func TestSubscribeAll(t *testing.T) {
	bus := NewSyncBus(nil)
	defer func() { _ = bus.Close() }()

	var receivedTypes []domain.EventType
	var mu sync.Mutex

	bus.SubscribeAll(func(event domain.Event) {
		mu.Lock()
		defer mu.Unlock()
		receivedTypes = append(receivedTypes, event.Type())
	})

	bus.Publish(domain.NewShuffleToggledEvent(true))
	bus.Publish(domain.NewRepeatToggledEvent(false))
	bus.Publish(domain.NewVolumeChangedEvent(0.7))

	mu.Lock()
	defer mu.Unlock()

	if len(receivedTypes) != 3 {
		t.Errorf("Expected 3 events, got %d", len(receivedTypes))
	}
}

// TestHasSubscribers tests the HasSubscribers method.
func TestHasSubscribers(t *testing.T) {
	bus := NewSyncBus(nil)
	defer func() { _ = bus.Close() }()

	if bus.HasSubscribers(domain.EventSongSelected) {
		t.Error("Expected no subscribers initially")
	}

	bus.Subscribe(domain.EventSongSelected, func(event domain.Event) {})

	if !bus.HasSubscribers(domain.EventSongSelected) {
		t.Error("Expected subscribers after subscription")
	}

	if bus.HasSubscribers(domain.EventPlaybackPaused) {
		t.Error("Expected no subscribers for different event type")
	}

	bus.SubscribeAll(func(event domain.Event) {})

	if !bus.HasSubscribers(domain.EventPlaybackPaused) {
		t.Error("Expected wildcard subscription to count for any type")
	}
}

// TestHandlerPanic tests that panicking handlers don't crash the bus.
func TestHandlerPanic(t *testing.T) {
	bus := NewSyncBus(nil)
	defer func() { _ = bus.Close() }()

	var callCount int32

	bus.Subscribe(domain.EventMuteToggled, func(event domain.Event) {
		panic("test panic")
	})
	bus.Subscribe(domain.EventMuteToggled, func(event domain.Event) {
		atomic.AddInt32(&callCount, 1)
	})

	bus.Publish(domain.NewMuteToggledEvent(true))

	if atomic.LoadInt32(&callCount) != 1 {
		t.Errorf("Expected normal handler to be called despite panic, got %d calls", callCount)
	}
}

// TestClose tests closing the event bus.
func TestClose(t *testing.T) {
	bus := NewSyncBus(nil)

	bus.Subscribe(domain.EventSongSelected, func(event domain.Event) {})
	bus.SubscribeAll(func(event domain.Event) {})

	if err := bus.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}

	if bus.HasSubscribers(domain.EventSongSelected) {
		t.Error("Expected no subscribers after close")
	}

	// Publishing after close is a no-op
	bus.Publish(domain.NewSongSelectedEvent(domain.Song{ID: "bulong"}))

	if err := bus.Close(); err == nil {
		t.Error("Expected error when closing already closed bus")
	}
}

// TestNilEventAndHandler tests the nil edge cases.
func TestNilEventAndHandler(t *testing.T) {
	bus := NewSyncBus(nil)
	defer func() { _ = bus.Close() }()

	var callCount int32
	bus.Subscribe(domain.EventSongSelected, func(event domain.Event) {
		atomic.AddInt32(&callCount, 1)
	})

	bus.Publish(nil)

	if atomic.LoadInt32(&callCount) != 0 {
		t.Errorf("Handler should not be called for nil event, got %d calls", callCount)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when subscribing with nil handler")
		}
	}()
	bus.Subscribe(domain.EventSongSelected, nil)
}

// TestConcurrentPublish tests concurrent event publishing.
func TestConcurrentPublish(t *testing.T) {
	bus := NewSyncBus(nil)
	defer func() { _ = bus.Close() }()

	var eventCount int32

	bus.Subscribe(domain.EventPlaybackProgress, func(event domain.Event) {
		atomic.AddInt32(&eventCount, 1)
	})

	const numGoroutines = 10
	const eventsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				bus.Publish(domain.NewPlaybackProgressEvent(90*time.Second, 3*time.Minute))
			}
		}()
	}

	wg.Wait()

	expectedCount := int32(numGoroutines * eventsPerGoroutine)
	if atomic.LoadInt32(&eventCount) != expectedCount {
		t.Errorf("Expected %d events, got %d", expectedCount, eventCount)
	}
}
