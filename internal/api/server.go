package api

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/smazurov/ledintent/internal/api/models"
	"github.com/smazurov/ledintent/internal/events"
	"github.com/smazurov/ledintent/internal/intent"
	"github.com/smazurov/ledintent/internal/logging"
	"github.com/smazurov/ledintent/internal/version"
)

const authRealm = `Basic realm="LedIntent API"`

// Server is the huma-based HTTP front end of the intent service.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	service    *intent.Service
	eventBus   *events.Bus
	options    *Options
	logger     *slog.Logger
}

// Options configures the API server.
type Options struct {
	AuthUsername      string
	AuthPassword      string
	IntentService     *intent.Service
	EventBus          *events.Bus
	PrometheusHandler http.Handler // optional, served at /metrics without auth
}

// basicAuthMiddleware enforces HTTP basic auth on operations that declare a
// security requirement. SSE clients may pass base64 credentials in ?auth=.
func (s *Server) basicAuthMiddleware(username, password string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}

		var encoded string
		if authHeader := ctx.Header("Authorization"); authHeader != "" {
			const prefix = "Basic "
			if !strings.HasPrefix(authHeader, prefix) {
				s.unauthorized(ctx, "Invalid authentication type")
				return
			}
			encoded = authHeader[len(prefix):]
		} else {
			encoded = ctx.Query("auth")
		}

		if encoded == "" {
			s.unauthorized(ctx, "Authentication required")
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			s.unauthorized(ctx, "Invalid credentials format", err)
			return
		}

		user, pass, ok := strings.Cut(string(decoded), ":")
		if !ok {
			s.unauthorized(ctx, "Invalid credentials format")
			return
		}
		if user != username || pass != password {
			s.unauthorized(ctx, "Invalid credentials")
			return
		}

		next(ctx)
	}
}

func (s *Server) unauthorized(ctx huma.Context, msg string, errs ...error) {
	ctx.SetHeader("WWW-Authenticate", authRealm)
	huma.WriteErr(s.api, ctx, http.StatusUnauthorized, msg, errs...)
}

// NewServer creates the API server using Go 1.22+ native routing.
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	corsConfig := DefaultCORSConfig()
	AddCORSHandler(mux, corsConfig)

	config := huma.DefaultConfig("LedIntent API", version.String())
	config.Info.Description = "Resolves LED intents into 4-LED patterns and forwards them to the LED backend"
	// Empty servers list will make OpenAPI use relative paths, working with any host
	config.Servers = []*huma.Server{}
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"basicAuth": {
			Type:   "http",
			Scheme: "basic",
		},
	}

	api := humago.New(mux, config)

	server := &Server{
		api:      api,
		mux:      mux,
		service:  opts.IntentService,
		eventBus: opts.EventBus,
		options:  opts,
		logger:   logging.GetLogger("api"),
	}

	api.UseMiddleware(NewCORSMiddleware(corsConfig))
	api.UseMiddleware(HTTPLoggingMiddleware)

	if opts.AuthUsername != "" && opts.AuthPassword != "" {
		api.UseMiddleware(server.basicAuthMiddleware(opts.AuthUsername, opts.AuthPassword))
	}

	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()

	return server
}

// GetAPI returns the Huma API instance
func (s *Server) GetAPI() huma.API {
	return s.api
}

// Start serves HTTP on addr until Stop is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting LedIntent API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	return s.httpServer.ListenAndServe()
}

// Stop closes the listener immediately. SSE streams would otherwise hold a
// graceful shutdown open forever.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")
	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

const healthPingTimeout = 2 * time.Second

func (s *Server) ping(ctx context.Context) error {
	if s.service == nil {
		return nil
	}
	return s.service.Ping(ctx)
}

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
		Security:    []map[string][]string{},
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		body := models.HealthData{
			Status:  "ok",
			Message: "API is healthy",
			Backend: "ok",
		}

		pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()
		if err := s.ping(pingCtx); err != nil {
			s.logger.Debug("LED backend ping failed", "error", err)
			body.Status = "degraded"
			body.Message = "LED backend unreachable"
			body.Backend = "unreachable"
		}
		return &models.HealthResponse{Body: body}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
		Security:    []map[string][]string{},
	}, func(ctx context.Context, input *struct{}) (*models.VersionResponse, error) {
		info := version.Get()
		return &models.VersionResponse{
			Body: models.VersionData{
				Version:   info.Version,
				GitCommit: info.GitCommit,
				BuildDate: info.BuildDate,
				BuildID:   info.BuildID,
				GoVersion: info.GoVersion,
				Compiler:  info.Compiler,
				Platform:  info.Platform,
			},
		}, nil
	})

	s.registerIntentRoutes()
	s.registerLEDRoutes()

	if s.eventBus != nil {
		s.registerSSERoutes()
		s.registerLogRoutes()
	}
}

// withAuth returns the security requirement for basic auth.
// Ignored when no credentials are configured.
func withAuth() []map[string][]string {
	return []map[string][]string{
		{"basicAuth": {}},
	}
}
