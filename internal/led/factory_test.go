package led

import (
	"log/slog"
	"os"
	"testing"

	"github.com/smazurov/ledintent/internal/ledapi"
)

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tests := []struct {
		name    string
		opts    Options
		check   func(Controller) bool
		wantErr bool
	}{
		{
			name:  "default is http",
			opts:  Options{BackendURL: "http://leds.local:5000"},
			check: func(c Controller) bool { cl, ok := c.(*ledapi.Client); return ok && cl.BaseURL() == "http://leds.local:5000" },
		},
		{
			name:  "memory",
			opts:  Options{Kind: "Memory"},
			check: func(c Controller) bool { _, ok := c.(*Memory); return ok },
		},
		{
			name:  "sysfs with explicit leds",
			opts:  Options{Kind: KindSysfs, SysfsLEDs: []string{"a", "b", "c", "d"}},
			check: func(c Controller) bool { s, ok := c.(*Sysfs); return ok && len(s.Available()) == 4 },
		},
		{
			name:    "sysfs with too many leds",
			opts:    Options{Kind: KindSysfs, SysfsLEDs: []string{"a", "b", "c", "d", "e"}},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			opts:    Options{Kind: "zigbee"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = logger
			ctrl, err := New(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if !tt.check(ctrl) {
				t.Errorf("New() returned unexpected controller %T", ctrl)
			}
		})
	}
}

func TestDetectBoard(t *testing.T) {
	model := detectBoard()

	// Should return a non-empty string (or "unknown")
	if model == "" {
		t.Error("detectBoard() returned empty string")
	}
}
