package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/smazurov/ledintent/internal/events"
	"github.com/smazurov/ledintent/internal/intent"
	"github.com/smazurov/ledintent/internal/pattern"
)

const (
	qos            = 1
	publishTimeout = 5 * time.Second
	disconnectMs   = 250
)

// ErrCodeInvalidMessage marks a payload that is not an IntentMessage.
const ErrCodeInvalidMessage = "INVALID_MESSAGE"

// Config holds broker settings.
type Config struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// IntentHandler is satisfied by *intent.Service.
type IntentHandler interface {
	Handle(ctx context.Context, name string, params map[string]any) (*intent.Result, error)
}

// publisher is the part of paho.Client the bridge publishes through.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload any) paho.Token
}

// Bridge handles intents received over MQTT and mirrors LED state back.
type Bridge struct {
	cfg      Config
	handler  IntentHandler
	eventBus *events.Bus
	timeout  time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	client paho.Client
	out    publisher
	unsub  func()
}

// NewBridge creates an MQTT bridge. eventBus may be nil to skip state publishing.
func NewBridge(cfg Config, handler IntentHandler, eventBus *events.Bus, timeout time.Duration, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		cfg:      cfg,
		handler:  handler,
		eventBus: eventBus,
		timeout:  timeout,
		logger:   logger.With("component", "mqtt-bridge"),
	}
}

// Start connects to the broker, subscribes to intents and begins
// publishing state. The connection is retried in the background.
func (b *Bridge) Start() error {
	opts := paho.NewClientOptions().
		AddBroker(b.cfg.BrokerURL).
		SetClientID(b.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetOrderMatters(false)

	if b.cfg.Username != "" {
		opts.SetUsername(b.cfg.Username)
		opts.SetPassword(b.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		b.logger.Warn("MQTT connection lost", "error", err)
	})
	// Subscriptions are not persisted across clean sessions; renew on every connect.
	opts.SetOnConnectHandler(func(c paho.Client) {
		topic := TopicIntents(b.cfg.TopicPrefix)
		if token := c.Subscribe(topic, qos, b.handleIntent); token.Wait() && token.Error() != nil {
			b.logger.Error("MQTT subscribe failed", "topic", topic, "error", token.Error())
			return
		}
		b.logger.Info("MQTT bridge subscribed", "broker", b.cfg.BrokerURL, "topic", topic)
	})

	client := paho.NewClient(opts)
	if token := client.Connect(); token.WaitTimeout(publishTimeout) && token.Error() != nil {
		return token.Error()
	}

	b.mu.Lock()
	b.client = client
	b.out = client
	b.mu.Unlock()

	if b.eventBus != nil {
		b.unsub = b.eventBus.Subscribe(b.publishState)
	}
	return nil
}

// Stop unsubscribes from the bus and disconnects.
func (b *Bridge) Stop() {
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		b.client.Disconnect(disconnectMs)
		b.client = nil
		b.out = nil
	}
	b.logger.Info("MQTT bridge stopped")
}

func (b *Bridge) handleIntent(_ paho.Client, msg paho.Message) {
	var in IntentMessage
	if err := json.Unmarshal(msg.Payload(), &in); err != nil {
		b.logger.Warn("Invalid intent payload", "topic", msg.Topic(), "error", err)
		b.publishResult(ResultMessage{
			RequestID: uuid.NewString(),
			Code:      ErrCodeInvalidMessage,
			Error:     err.Error(),
		})
		return
	}
	if in.RequestID == "" {
		in.RequestID = uuid.NewString()
	}
	if !ValidRequestID(in.RequestID) {
		b.logger.Warn("Invalid request ID", "topic", msg.Topic(), "request_id", in.RequestID)
		b.publishResult(ResultMessage{
			RequestID: uuid.NewString(),
			Intent:    in.Intent,
			Code:      ErrCodeInvalidMessage,
			Error:     "request_id must not contain '/', '+' or '#'",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	result, err := b.handler.Handle(ctx, in.Intent, in.Parameters)
	if err != nil {
		out := ResultMessage{RequestID: in.RequestID, Intent: in.Intent, Code: string(intent.CodeOf(err)), Error: err.Error()}
		var ie *intent.Error
		if errors.As(err, &ie) {
			out.Error = ie.Message
		}
		b.publishResult(out)
		return
	}

	b.publishResult(ResultMessage{
		RequestID: in.RequestID,
		OK:        true,
		Result:    result.Response,
		Intent:    string(result.Intent),
		Action:    string(result.Kind),
		Pattern:   result.Pattern.String(),
	})
}

func (b *Bridge) publishResult(m ResultMessage) {
	b.publish(TopicResult(b.cfg.TopicPrefix, m.RequestID), false, m)
}

func (b *Bridge) publishState(e events.PatternAppliedEvent) {
	p, err := pattern.Parse(e.Pattern)
	if err != nil {
		return
	}
	b.publish(TopicState(b.cfg.TopicPrefix), true, StateMessage{
		Pattern:   p.String(),
		LEDs:      p.States(),
		Intent:    e.Intent,
		Timestamp: e.Timestamp,
	})
}

func (b *Bridge) publish(topic string, retained bool, v any) {
	b.mu.Lock()
	out := b.out
	b.mu.Unlock()
	if out == nil {
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		b.logger.Warn("Failed to marshal MQTT payload", "topic", topic, "error", err)
		return
	}
	token := out.Publish(topic, qos, retained, body)
	if !token.WaitTimeout(publishTimeout) {
		b.logger.Warn("MQTT publish timed out", "topic", topic)
		return
	}
	if err := token.Error(); err != nil {
		b.logger.Warn("MQTT publish failed", "topic", topic, "error", err)
	}
}
