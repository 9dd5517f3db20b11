package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/ledintent/internal/events"
	"github.com/smazurov/ledintent/internal/metrics"
)

// ConnectedMessage is the first message on every event stream.
type ConnectedMessage struct {
	Message        string `json:"message" example:"SSE connection established"`
	CurrentPattern string `json:"current_pattern,omitempty" example:"0001" doc:"Last pattern accepted by the backend, if any"`
	Timestamp      string `json:"timestamp" example:"2025-01-27T10:30:00Z"`
}

// registerSSERoutes registers the intent event stream.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of handled and failed intents and applied patterns",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"connected":       ConnectedMessage{},
		"intent-handled":  events.IntentHandledEvent{},
		"intent-failed":   events.IntentFailedEvent{},
		"pattern-applied": events.PatternAppliedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.IntentHandledEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.IntentFailedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.PatternAppliedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		if err := send.Data(ConnectedMessage{
			Message:        "SSE connection established",
			CurrentPattern: metrics.CurrentPattern(),
			Timestamp:      time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
