package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/ledintent/internal/logging"
	"github.com/smazurov/ledintent/internal/metrics"
)

// HTTPLoggingMiddleware logs each request at a level chosen by its status
// and counts it per operation.
func HTTPLoggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()
	logger := logging.GetLogger("http")

	method := ctx.Method()
	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", ctx.URL().Path),
		slog.String("remote_addr", ctx.RemoteAddr()),
	}
	if query := ctx.URL().RawQuery; query != "" {
		attrs = append(attrs, slog.String("query", query))
	}
	if ua := ctx.Header("User-Agent"); ua != "" {
		attrs = append(attrs, slog.String("user_agent", ua))
	}

	next(ctx)

	status := ctx.Status()
	if status == 0 {
		status = http.StatusOK
	}
	attrs = append(attrs,
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	)

	operation := "unknown"
	if op := ctx.Operation(); op != nil {
		operation = op.OperationID
	}
	metrics.RecordHTTPRequest(operation, strconv.Itoa(status))

	level := slog.LevelInfo
	switch {
	case method == http.MethodOptions:
		level = slog.LevelDebug
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	logger.LogAttrs(ctx.Context(), level, "HTTP request completed", attrs...)
}
