// Package events carries in-process notifications between the intent service,
// the SSE endpoints and the local LED mirror.
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// A nil bus drops the event.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case IntentHandledEvent:
		event.Publish(b.dispatcher, e)
	case IntentFailedEvent:
		event.Publish(b.dispatcher, e)
	case PatternAppliedEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function.
// The handler's parameter type selects the event. Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e PatternAppliedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(IntentHandledEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(IntentFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PatternAppliedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEntryEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// SubscribeToChannel bridges callback subscriptions to a channel for SSE select loops.
// Events are dropped when ch is full.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
