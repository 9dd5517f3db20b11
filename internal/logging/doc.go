// Package logging provides slog loggers with per-module levels.
//
// Initialize once at startup, then ask for a module logger:
//
//	logging.Initialize(logging.Config{
//		Level:   "info",
//		Format:  "text",
//		Modules: map[string]string{"backend": "debug"},
//	})
//	logger := logging.GetLogger("intent")
//	logger.Info("Intent handled", "intent", "setmood")
//
// Records fan out to stdout (when connected), the systemd journal (when
// journald is reachable) and an in-memory ring buffer that backs the
// /api/logs/stream endpoint.
//
// Module levels live in slog.LevelVar values, so SetLevels can change them at
// runtime without recreating loggers already handed out:
//
//	[logging]
//	level = "info"
//	format = "json"
//	backend = "debug"
//	api = "warn"
//
// Journal output is tagged with SYSLOG_IDENTIFIER=ledintent:
//
//	journalctl -t ledintent MODULE=backend -f
package logging
