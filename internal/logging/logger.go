package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultBufferSize = 1000

// Rotation limits for the optional log file.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 7
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config represents logging configuration.
type Config struct {
	Level   string            `toml:"level"`
	Format  string            `toml:"format"`
	Modules map[string]string `toml:"modules"`
	File    string            `toml:"file"` // optional rotated log file
}

var (
	mutex          sync.RWMutex
	globalConfig   Config
	isInitialized  bool
	globalLevelVar = &slog.LevelVar{}
	moduleLoggers  = make(map[string]*slog.Logger)
	moduleLevels   = make(map[string]*slog.LevelVar)
	logBuffer      *RingBuffer
	logCallback    LogCallback
	logFile        io.WriteCloser
)

// Initialize sets up output handlers and levels. Loggers obtained earlier are
// rebuilt so they pick up the configured format and the ring buffer.
func Initialize(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	globalConfig = config
	isInitialized = true
	logBuffer = NewRingBuffer(defaultBufferSize)

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	if config.File != "" {
		logFile = &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
			Compress:   true,
		}
	}

	applyLevelsLocked(config)

	for module, levelVar := range moduleLevels {
		moduleLoggers[module] = slog.New(createHandler(config.Format, levelVar)).With("module", module)
	}

	slog.SetDefault(slog.New(createHandler(config.Format, globalLevelVar)))
}

// SetLevels updates global and module levels in place. Format changes need
// a restart.
func SetLevels(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	globalConfig.Level = config.Level
	globalConfig.Modules = config.Modules
	applyLevelsLocked(config)
}

func applyLevelsLocked(config Config) {
	global, ok := parseLevel(config.Level)
	if !ok {
		global = slog.LevelInfo
	}
	globalLevelVar.Set(global)

	for module, levelVar := range moduleLevels {
		levelVar.Set(moduleLevel(config, module, global))
	}
}

func moduleLevel(config Config, module string, fallback slog.Level) slog.Level {
	if level, ok := parseLevel(config.Modules[module]); ok {
		return level
	}
	return fallback
}

// GetLogger returns the logger for module, creating it on first use.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	logger, exists := moduleLoggers[module]
	mutex.RUnlock()
	if exists {
		return logger
	}

	mutex.Lock()
	defer mutex.Unlock()

	if logger, exists := moduleLoggers[module]; exists {
		return logger
	}

	levelVar := &slog.LevelVar{}
	format := "text"
	if isInitialized {
		global, ok := parseLevel(globalConfig.Level)
		if !ok {
			global = slog.LevelInfo
		}
		levelVar.Set(moduleLevel(globalConfig, module, global))
		format = globalConfig.Format
	}

	logger = slog.New(createHandler(format, levelVar)).With("module", module)
	moduleLoggers[module] = logger
	moduleLevels[module] = levelVar
	return logger
}

// Close flushes and closes the log file, if one is configured.
func Close() error {
	mutex.Lock()
	defer mutex.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// GetBuffer returns the log ring buffer, or nil before Initialize.
func GetBuffer() *RingBuffer {
	mutex.RLock()
	defer mutex.RUnlock()
	return logBuffer
}

// SetLogCallback registers a function called for every buffered entry.
func SetLogCallback(callback LogCallback) {
	mutex.Lock()
	defer mutex.Unlock()
	logCallback = callback
}

func currentSinks() (*RingBuffer, LogCallback) {
	mutex.RLock()
	defer mutex.RUnlock()
	return logBuffer, logCallback
}

// createHandler builds the stdout/file/journal/buffer handler chain for level.
// Callers hold mutex.
func createHandler(format string, level slog.Leveler) slog.Handler {
	var handlers []slog.Handler
	if isStdoutAvailable() {
		handlers = append(handlers, formatHandler(os.Stdout, format, level))
	}
	if logFile != nil {
		handlers = append(handlers, formatHandler(logFile, format, level))
	}
	if IsJournalAvailable() {
		handlers = append(handlers, NewJournalHandler(level))
	}
	handlers = append(handlers, NewBufferHandler(level))

	if len(handlers) == 1 {
		return handlers[0]
	}
	return NewMultiHandler(handlers...)
}

func formatHandler(w io.Writer, format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// isStdoutAvailable is false when stdout is /dev/null or closed.
func isStdoutAvailable() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	mode := fi.Mode()
	return mode&os.ModeCharDevice != 0 || mode&os.ModeNamedPipe != 0 || mode&os.ModeSocket != 0 || mode.IsRegular()
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
