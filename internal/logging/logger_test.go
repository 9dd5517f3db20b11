package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// resetState clears package globals between tests.
func resetState() {
	mutex.Lock()
	defer mutex.Unlock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevels = make(map[string]*slog.LevelVar)
	isInitialized = false
	globalConfig = Config{}
	logBuffer = nil
	logCallback = nil
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func TestModuleLevelOverride(t *testing.T) {
	resetState()

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"backend": "debug",
			"api":     "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"backend", true, true, true},
		{"api", false, false, true},
		{"intent", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()
			ctx := context.Background()

			if got := handler.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("Debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := handler.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("Info enabled = %v, want %v", got, tt.wantInfo)
			}
			if got := handler.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("Warn enabled = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	resetState()

	before := GetLogger("backend")
	if before.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Logger created before Initialize should default to info")
	}

	Initialize(Config{Level: "info", Modules: map[string]string{"backend": "debug"}})

	if GetLogger("backend") == before {
		t.Error("Initialize should rebuild loggers created earlier")
	}
	if !GetLogger("backend").Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Rebuilt logger should have debug enabled")
	}
}

func TestSetLevelsUpdatesExistingLoggers(t *testing.T) {
	resetState()
	Initialize(Config{Level: "info"})

	logger := GetLogger("intent")
	if logger.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should start disabled")
	}

	SetLevels(Config{Level: "info", Modules: map[string]string{"intent": "debug"}})

	if !logger.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("SetLevels should enable debug on an existing logger")
	}

	SetLevels(Config{Level: "error"})
	if logger.Handler().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("SetLevels should fall back to global level when module override is removed")
	}
}

func TestBufferCapturesEntries(t *testing.T) {
	resetState()
	Initialize(Config{Level: "debug"})

	var seen []LogEntry
	SetLogCallback(func(e LogEntry) { seen = append(seen, e) })

	GetLogger("backend").Info("Applied LED pattern",
		"pattern", "1010",
		"error", errors.New("none"),
		slog.Group("req", "status", 200),
	)

	entries := GetBuffer().ReadAll()
	if len(entries) == 0 {
		t.Fatal("no entries buffered")
	}
	last := entries[len(entries)-1]
	if last.Module != "backend" || last.Level != "info" || last.Message != "Applied LED pattern" {
		t.Errorf("unexpected entry %+v", last)
	}
	if last.Attributes["pattern"] != "1010" {
		t.Errorf("pattern attr = %v", last.Attributes["pattern"])
	}
	if last.Attributes["error"] != "none" {
		t.Errorf("error attr = %v, want flattened error string", last.Attributes["error"])
	}
	if _, ok := last.Attributes["req.status"]; !ok {
		t.Errorf("group attr not flattened: %v", last.Attributes)
	}
	if len(seen) == 0 {
		t.Error("callback not invoked")
	}
}

func TestRingBufferWraps(t *testing.T) {
	rb := NewRingBuffer(3)
	if rb.ReadAll() != nil {
		t.Error("empty buffer should return nil")
	}

	for i, msg := range []string{"a", "b", "c", "d", "e"} {
		rb.Write(LogEntry{Message: msg, Timestamp: time.Unix(int64(i), 0)})
	}

	got := rb.ReadAll()
	if rb.Count() != 3 || len(got) != 3 {
		t.Fatalf("Count() = %d, len = %d, want 3", rb.Count(), len(got))
	}
	for i, want := range []string{"c", "d", "e"} {
		if got[i].Message != want {
			t.Errorf("entry %d = %q, want %q", i, got[i].Message, want)
		}
	}
}

func TestMultiHandlerDebugOutput(t *testing.T) {
	var buf bytes.Buffer

	debugHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	infoHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(NewMultiHandler(debugHandler, infoHandler)).With("module", "test")
	logger.Debug("debug only message")

	if count := strings.Count(buf.String(), "debug only message"); count != 1 {
		t.Errorf("Expected 1 debug message, got %d. Output: %s", count, buf.String())
	}
}

func TestParseLevelValues(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"DEBUG", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"invalid", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseLevel(tt.input)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("parseLevel(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestJournalKey(t *testing.T) {
	if got := journalKey("remote_addr"); got != "REMOTE_ADDR" {
		t.Errorf("journalKey(remote_addr) = %q", got)
	}
	if got := journalKey("req.status-code"); got != "REQ_STATUS_CODE" {
		t.Errorf("journalKey(req.status-code) = %q", got)
	}
}

func TestLogFile(t *testing.T) {
	resetState()
	t.Cleanup(resetState)

	path := filepath.Join(t.TempDir(), "ledintent.log")
	Initialize(Config{Level: "info", Format: "json", File: path})

	GetLogger("intent").Info("pattern applied", "pattern", "0110")
	GetLogger("intent").Debug("filtered out")

	if err := Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"msg":"pattern applied"`) || !strings.Contains(text, `"module":"intent"`) {
		t.Errorf("log file content = %s", text)
	}
	if strings.Contains(text, "filtered out") {
		t.Error("debug record written at info level")
	}
}
