package nats

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/smazurov/ledintent/internal/events"
)

// Bridge republishes intent events from the event bus onto NATS.
type Bridge struct {
	url      string
	eventBus *events.Bus
	conn     *nats.Conn
	unsubs   []func()
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewBridge creates an EventBus-to-NATS bridge.
func NewBridge(url string, eventBus *events.Bus, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		url:      url,
		eventBus: eventBus,
		logger:   logger.With("component", "nats-bridge"),
	}
}

// Start connects to NATS and subscribes to the event bus.
func (b *Bridge) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	conn, err := connect(b.url, "ledintent-bridge", b.logger)
	if err != nil {
		return err
	}
	b.conn = conn

	b.unsubs = append(b.unsubs,
		b.eventBus.Subscribe(func(e events.IntentHandledEvent) {
			b.publish(SubjectEvent(EventHandled), e)
		}),
		b.eventBus.Subscribe(func(e events.IntentFailedEvent) {
			b.publish(SubjectEvent(EventFailed), e)
		}),
		b.eventBus.Subscribe(func(e events.PatternAppliedEvent) {
			b.publish(SubjectEvent(EventApplied), e)
		}),
	)

	b.logger.Info("NATS bridge connected", "url", b.url, "prefix", SubjectEventsPrefix)
	return nil
}

func (b *Bridge) publish(subject string, event any) {
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()
	if conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Warn("Failed to marshal event", "subject", subject, "error", err)
		return
	}
	if err := conn.Publish(subject, data); err != nil {
		b.logger.Warn("Failed to publish event", "subject", subject, "error", err)
		return
	}
	b.logger.Debug("Published event", "subject", subject)
}

// Stop unsubscribes from the bus and closes the connection.
func (b *Bridge) Stop() {
	// Unsubscribe without the lock; handlers may be waiting on it.
	b.mu.Lock()
	unsubs := b.unsubs
	b.unsubs = nil
	b.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	b.logger.Info("NATS bridge stopped")
}

// IsConnected returns true if the bridge is connected to NATS.
func (b *Bridge) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil && b.conn.IsConnected()
}
