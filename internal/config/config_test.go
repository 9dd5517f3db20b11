package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

// testOptions mirrors the shape of the CLI options struct.
type testOptions struct {
	Config string

	Port        string        `toml:"server.port" env:"TEST_PORT"`
	BackendURL  string        `toml:"backend.url" env:"TEST_BACKEND_URL"`
	Timeout     time.Duration `toml:"backend.timeout" env:"TEST_BACKEND_TIMEOUT"`
	Metrics     bool          `toml:"features.metrics_enabled" env:"TEST_METRICS"`
	MaxBody     int           `toml:"server.max_body" env:"TEST_MAX_BODY"`
	SysfsLEDs   []string      `toml:"backend.sysfs_leds" env:"TEST_SYSFS_LEDS"`
	LoggingHTTP string        `toml:"logging.http" env:"TEST_LOGGING_HTTP"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleTOML = `
[server]
port = ":9000"
max_body = 4096

[backend]
url = "http://leds.local:5000"
timeout = "750ms"
sysfs_leds = ["red", "yellow", "green", "blue"]

[features]
metrics_enabled = true

[logging]
level = "info"
format = "json"
http = "warn"
backend = "debug"
`

func TestLoadConfigFromTOML(t *testing.T) {
	opts := &testOptions{Config: writeConfig(t, sampleTOML)}

	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := testOptions{
		Config:      opts.Config,
		Port:        ":9000",
		BackendURL:  "http://leds.local:5000",
		Timeout:     750 * time.Millisecond,
		Metrics:     true,
		MaxBody:     4096,
		SysfsLEDs:   []string{"red", "yellow", "green", "blue"},
		LoggingHTTP: "warn",
	}
	if !reflect.DeepEqual(*opts, want) {
		t.Errorf("LoadConfig() = %+v\nwant %+v", *opts, want)
	}
}

func TestLoadConfigEnvOverridesTOML(t *testing.T) {
	t.Setenv(EnvPrefix+"TEST_BACKEND_URL", "http://env:5000")
	t.Setenv(EnvPrefix+"TEST_BACKEND_TIMEOUT", "2s")
	t.Setenv(EnvPrefix+"TEST_METRICS", "false")
	t.Setenv(EnvPrefix+"TEST_SYSFS_LEDS", "a, b")

	opts := &testOptions{Config: writeConfig(t, sampleTOML)}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.BackendURL != "http://env:5000" {
		t.Errorf("BackendURL = %q, want env override", opts.BackendURL)
	}
	if opts.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", opts.Timeout)
	}
	if opts.Metrics {
		t.Error("Metrics should be overridden to false by env")
	}
	if !reflect.DeepEqual(opts.SysfsLEDs, []string{"a", "b"}) {
		t.Errorf("SysfsLEDs = %v", opts.SysfsLEDs)
	}
	if opts.Port != ":9000" {
		t.Errorf("Port = %q, want TOML value", opts.Port)
	}
}

func TestLoadConfigCLIFlagsWin(t *testing.T) {
	t.Setenv(EnvPrefix+"TEST_PORT", ":7000")

	opts := &testOptions{Config: writeConfig(t, sampleTOML), Port: ":8123"}

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&opts.Port, "port", ":8000", "")
	if err := cmd.Flags().Set("port", ":8123"); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if opts.Port != ":8123" {
		t.Errorf("Port = %q, CLI flag should win", opts.Port)
	}
}

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	opts := &testOptions{Config: filepath.Join(t.TempDir(), "absent.toml"), Port: ":8000"}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if opts.Port != ":8000" {
		t.Errorf("Port changed to %q", opts.Port)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		env  map[string]string
	}{
		{name: "malformed toml", toml: "[server\nport = 1"},
		{name: "wrong type", toml: "[server]\nport = 9000"},
		{name: "bad duration", toml: "[backend]\ntimeout = \"soon\""},
		{name: "bad env bool", toml: "", env: map[string]string{"TEST_METRICS": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(EnvPrefix+k, v)
			}
			opts := &testOptions{Config: writeConfig(t, tt.toml)}
			if err := LoadConfig(opts, nil); err == nil {
				t.Error("LoadConfig should fail")
			}
		})
	}

	if err := LoadConfig(testOptions{}, nil); err == nil {
		t.Error("LoadConfig should reject non-pointer options")
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := map[string]string{
		"Port":           "port",
		"LoggingLevel":   "logging-level",
		"BackendURL":     "backend-url",
		"BackendTimeout": "backend-timeout",
		"HTTPPort":       "http-port",
	}
	for in, want := range tests {
		if got := fieldNameToFlag(in); got != want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{
		"backend": map[string]any{"url": "http://x"},
		"root":    "value",
	}

	tests := []struct {
		path string
		want any
	}{
		{"root", "value"},
		{"backend.url", "http://x"},
		{"backend.missing", nil},
		{"root.child", nil},
		{"absent", nil},
	}
	for _, tt := range tests {
		if got := getNestedValue(data, tt.path); got != tt.want {
			t.Errorf("getNestedValue(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	cfg, err := LoadLoggingConfig(writeConfig(t, sampleTOML))
	if err != nil {
		t.Fatalf("LoadLoggingConfig failed: %v", err)
	}
	if cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("global = %s/%s", cfg.Level, cfg.Format)
	}
	want := map[string]string{"http": "warn", "backend": "debug"}
	if !reflect.DeepEqual(cfg.Modules, want) {
		t.Errorf("Modules = %v, want %v", cfg.Modules, want)
	}

	if _, err := LoadLoggingConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("missing file should return an error")
	}
}
