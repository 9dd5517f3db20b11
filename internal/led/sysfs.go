package led

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/smazurov/ledintent/internal/pattern"
)

const sysfsLEDPath = "/sys/class/leds"

// Sysfs drives LEDs through the Linux sysfs LED interface.
// Slot i of the pattern maps to names[i]; empty names are absent LEDs.
type Sysfs struct {
	root  string
	names [pattern.Width]string
	mu    sync.Mutex
}

// NewSysfs creates a sysfs controller for the given LED names under root.
// An empty root uses /sys/class/leds.
func NewSysfs(root string, names [pattern.Width]string) *Sysfs {
	if root == "" {
		root = sysfsLEDPath
	}
	return &Sysfs{root: root, names: names}
}

// ApplyPattern switches each mapped LED to manual control and sets its brightness.
func (s *Sysfs) ApplyPattern(_ context.Context, p pattern.Pattern) (json.RawMessage, error) {
	valid, err := pattern.Parse(p.String())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, name := range s.names {
		if name == "" {
			continue
		}
		ledPath := filepath.Join(s.root, name)
		if _, err := os.Stat(ledPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("LED %q not found at %s", name, ledPath)
		}

		// Manual control needs the trigger cleared first.
		if err := os.WriteFile(filepath.Join(ledPath, "trigger"), []byte("none"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to set LED trigger: %w", err)
		}

		brightness := "0"
		if valid.Lit(i) {
			brightness = "1"
		}
		if err := os.WriteFile(filepath.Join(ledPath, "brightness"), []byte(brightness), 0o644); err != nil {
			return nil, fmt.Errorf("failed to set LED brightness: %w", err)
		}
	}

	return encodeState("ok", "sysfs", valid)
}

// GetStatus reads brightness back from sysfs. Absent LEDs read as off.
func (s *Sysfs) GetStatus(_ context.Context) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var states [pattern.Width]bool
	for i, name := range s.names {
		if name == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.root, name, "brightness"))
		if err != nil {
			return nil, fmt.Errorf("failed to read LED brightness: %w", err)
		}
		value := strings.TrimSpace(string(data))
		states[i] = value != "" && value != "0"
	}

	return encodeState("", "sysfs", pattern.FromStates(states))
}

// Available returns the mapped LED names in slot order.
func (s *Sysfs) Available() []string {
	names := make([]string, 0, len(s.names))
	for _, name := range s.names {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
