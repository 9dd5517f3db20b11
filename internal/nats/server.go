package nats

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

const readyTimeout = 5 * time.Second

// ServerOptions configures the embedded NATS server.
type ServerOptions struct {
	Port   int // -1 picks a free port
	Host   string
	Name   string
	Logger *slog.Logger
}

// DefaultServerOptions returns loopback defaults for the embedded server.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		Port: 4222,
		Host: "127.0.0.1",
		Name: "ledintent",
	}
}

// Server wraps an embedded NATS server.
type Server struct {
	ns     *server.Server
	opts   ServerOptions
	logger *slog.Logger
}

// NewServer creates an embedded NATS server. Zero fields take defaults.
func NewServer(opts ServerOptions) *Server {
	defaults := DefaultServerOptions()
	if opts.Port == 0 {
		opts.Port = defaults.Port
	}
	if opts.Host == "" {
		opts.Host = defaults.Host
	}
	if opts.Name == "" {
		opts.Name = defaults.Name
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		opts:   opts,
		logger: logger.With("component", "nats-server"),
	}
}

// Start runs the server and waits until it accepts connections.
func (s *Server) Start() error {
	ns, err := server.NewServer(&server.Options{
		Host:       s.opts.Host,
		Port:       s.opts.Port,
		ServerName: s.opts.Name,
		NoLog:      true,
		NoSigs:     true, // signals belong to the main process
		MaxPayload: 64 * 1024,
	})
	if err != nil {
		return fmt.Errorf("failed to create NATS server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return fmt.Errorf("NATS server failed to start within %s", readyTimeout)
	}

	s.ns = ns
	s.logger.Info("NATS server started", "url", s.ClientURL())
	return nil
}

// Stop shuts the server down and waits for it to finish.
func (s *Server) Stop() {
	if s.ns == nil {
		return
	}
	s.logger.Info("Stopping NATS server")
	s.ns.Shutdown()
	s.ns.WaitForShutdown()
	s.ns = nil
}

// ClientURL returns the URL clients should use to connect.
func (s *Server) ClientURL() string {
	if s.ns == nil {
		return fmt.Sprintf("nats://%s:%d", s.opts.Host, s.opts.Port)
	}
	return s.ns.ClientURL()
}

// IsRunning reports whether the server accepts connections.
func (s *Server) IsRunning() bool {
	return s.ns != nil && s.ns.Running()
}

// NumClients returns the number of connected clients.
func (s *Server) NumClients() int {
	if s.ns == nil {
		return 0
	}
	return s.ns.NumClients()
}
