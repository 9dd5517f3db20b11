package intent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/smazurov/ledintent/internal/events"
	"github.com/smazurov/ledintent/internal/metrics"
	"github.com/smazurov/ledintent/internal/pattern"
)

// Gateway is the LED backend the service forwards resolved intents to.
// Responses are opaque JSON relayed to the caller unchanged.
type Gateway interface {
	ApplyPattern(ctx context.Context, p pattern.Pattern) (json.RawMessage, error)
	GetStatus(ctx context.Context) (json.RawMessage, error)
}

// Result is what a successfully handled intent returns to its caller.
type Result struct {
	Action
	Response json.RawMessage
}

// Service resolves intents and performs exactly one backend call per intent.
type Service struct {
	gateway  Gateway
	eventBus *events.Bus
	logger   *slog.Logger
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	Gateway  Gateway
	EventBus *events.Bus // optional
	Logger   *slog.Logger
}

// NewService creates an intent service.
func NewService(opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gateway:  opts.Gateway,
		eventBus: opts.EventBus,
		logger:   logger,
	}
}

// Handle resolves the intent and forwards it to the gateway.
// Resolution errors never reach the gateway; gateway errors are wrapped
// as ErrCodeBackend and returned without retry.
func (s *Service) Handle(ctx context.Context, name string, params map[string]any) (*Result, error) {
	action, err := Resolve(name, params)
	if err != nil {
		s.fail(name, err)
		return nil, err
	}

	var resp json.RawMessage
	start := time.Now()
	switch action.Kind {
	case ActionStatus:
		resp, err = s.gateway.GetStatus(ctx)
		metrics.ObserveBackend("status", start, err)
	default:
		resp, err = s.gateway.ApplyPattern(ctx, action.Pattern)
		metrics.ObserveBackend("apply", start, err)
	}
	if err != nil {
		berr := NewError(ErrCodeBackend, backendMessage(err), err)
		s.fail(name, berr)
		return nil, berr
	}

	s.logger.Info("Intent handled",
		"intent", action.Intent,
		"action", action.Kind,
		"pattern", action.Pattern.String())
	metrics.RecordIntent(string(action.Intent), nil)

	now := time.Now().Format(time.RFC3339)
	if action.Kind == ActionApply {
		metrics.SetCurrentPattern(action.Pattern.String())
		s.eventBus.Publish(events.PatternAppliedEvent{
			Pattern:   action.Pattern.String(),
			Intent:    string(action.Intent),
			Timestamp: now,
		})
	}
	s.eventBus.Publish(events.IntentHandledEvent{
		Intent:    string(action.Intent),
		Action:    string(action.Kind),
		Pattern:   action.Pattern.String(),
		Timestamp: now,
	})

	return &Result{Action: action, Response: resp}, nil
}

// Pinger is implemented by gateways that can check reachability without
// changing LED state.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks the gateway when it implements Pinger. Local gateways are
// always reachable.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.gateway.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Status queries the gateway directly, bypassing intent resolution.
func (s *Service) Status(ctx context.Context) (json.RawMessage, error) {
	start := time.Now()
	resp, err := s.gateway.GetStatus(ctx)
	metrics.ObserveBackend("status", start, err)
	if err != nil {
		return nil, NewError(ErrCodeBackend, backendMessage(err), err)
	}
	return resp, nil
}

func (s *Service) fail(name string, err error) {
	code := CodeOf(err)
	message := err.Error()
	var ie *Error
	if errors.As(err, &ie) {
		message = ie.Message
	}

	level := slog.LevelError
	if IsResolutionError(err) {
		level = slog.LevelWarn
	}
	s.logger.Log(context.Background(), level, "Intent failed", "intent", name, "code", code, "error", err)
	metrics.RecordIntent(metricLabel(name), err)
	s.eventBus.Publish(events.IntentFailedEvent{
		Intent:    name,
		Code:      string(code),
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// metricLabel bounds label cardinality to the known intents.
func metricLabel(name string) string {
	n := Name(normalize(name))
	if slices.Contains(intentNames, n) {
		return string(n)
	}
	return "unknown"
}

func backendMessage(err error) string {
	return "LED backend request failed: " + err.Error()
}
