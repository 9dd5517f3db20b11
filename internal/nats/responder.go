package nats

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/smazurov/ledintent/internal/intent"
)

// IntentHandler is satisfied by *intent.Service.
type IntentHandler interface {
	Handle(ctx context.Context, name string, params map[string]any) (*intent.Result, error)
}

// Responder answers intent requests on SubjectIntents.
type Responder struct {
	url     string
	handler IntentHandler
	timeout time.Duration
	conn    *nats.Conn
	sub     *nats.Subscription
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewResponder creates a responder. timeout bounds each handled request.
func NewResponder(url string, handler IntentHandler, timeout time.Duration, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		url:     url,
		handler: handler,
		timeout: timeout,
		logger:  logger.With("component", "nats-responder"),
	}
}

// Start connects and joins the intent queue group.
func (r *Responder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, err := connect(r.url, "ledintent-responder", r.logger)
	if err != nil {
		return err
	}

	sub, err := conn.QueueSubscribe(SubjectIntents, QueueGroup, r.handleRequest)
	if err != nil {
		conn.Close()
		return err
	}

	r.conn = conn
	r.sub = sub
	r.logger.Info("NATS responder listening", "subject", SubjectIntents, "queue", QueueGroup)
	return nil
}

func (r *Responder) handleRequest(msg *nats.Msg) {
	req, err := UnmarshalIntentRequest(msg.Data)
	if err != nil {
		r.logger.Warn("Failed to unmarshal intent request", "error", err)
		r.respond(msg, IntentReply{Error: &ReplyError{Code: ErrCodeInvalidRequest, Message: err.Error()}})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	result, err := r.handler.Handle(ctx, req.Intent, req.Parameters)
	if err != nil {
		r.respond(msg, IntentReply{Error: replyError(err)})
		return
	}

	r.respond(msg, IntentReply{
		Result:  result.Response,
		Intent:  string(result.Intent),
		Action:  string(result.Kind),
		Pattern: result.Pattern.String(),
	})
}

func (r *Responder) respond(msg *nats.Msg, reply IntentReply) {
	if msg.Reply == "" {
		return // published without a reply subject
	}
	data, err := reply.Marshal()
	if err != nil {
		r.logger.Warn("Failed to marshal intent reply", "error", err)
		return
	}
	if err := msg.Respond(data); err != nil {
		r.logger.Warn("Failed to send intent reply", "error", err)
	}
}

func replyError(err error) *ReplyError {
	var ie *intent.Error
	if errors.As(err, &ie) {
		return &ReplyError{Code: string(ie.Code), Message: ie.Message}
	}
	return &ReplyError{Code: string(intent.CodeOf(err)), Message: err.Error()}
}

// Stop leaves the queue group and closes the connection.
func (r *Responder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sub != nil {
		_ = r.sub.Unsubscribe()
		r.sub = nil
	}
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
	r.logger.Info("NATS responder stopped")
}

// IsConnected reports whether the responder is connected to NATS.
func (r *Responder) IsConnected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conn != nil && r.conn.IsConnected()
}

// connect dials url with reconnect-forever options.
func connect(url, name string, logger *slog.Logger) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name(name),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("NATS reconnected")
		}),
	)
}
