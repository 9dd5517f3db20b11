package led

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/smazurov/ledintent/internal/ledapi"
	"github.com/smazurov/ledintent/internal/pattern"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// Backend kinds accepted by New.
const (
	KindHTTP   = "http"
	KindMemory = "memory"
	KindSysfs  = "sysfs"
)

// Options selects and configures a controller.
type Options struct {
	Kind       string
	BackendURL string
	Timeout    time.Duration
	SysfsRoot  string
	SysfsLEDs  []string // slot order; overrides board detection
	Logger     *slog.Logger
}

// New creates the controller named by opts.Kind. An empty kind means http.
func New(opts Options) (Controller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(opts.Kind) {
	case "", KindHTTP:
		logger.Info("Using LedAPI backend", "url", opts.BackendURL, "timeout", opts.Timeout)
		return ledapi.NewClient(opts.BackendURL,
			ledapi.WithTimeout(opts.Timeout),
			ledapi.WithLogger(logger),
		), nil

	case KindMemory:
		logger.Info("Using simulated LED backend")
		return NewMemory(logger), nil

	case KindSysfs:
		names, err := sysfsNames(opts.SysfsLEDs, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using sysfs LED backend", "leds", names)
		return NewSysfs(opts.SysfsRoot, names), nil

	default:
		return nil, fmt.Errorf("unknown LED backend kind %q (want %s, %s or %s)",
			opts.Kind, KindHTTP, KindMemory, KindSysfs)
	}
}

// sysfsNames returns the configured LED names, or the board defaults.
func sysfsNames(configured []string, logger *slog.Logger) ([pattern.Width]string, error) {
	var names [pattern.Width]string
	if len(configured) > 0 {
		if len(configured) > pattern.Width {
			return names, fmt.Errorf("at most %d sysfs LEDs can be mapped, got %d", pattern.Width, len(configured))
		}
		copy(names[:], configured)
		return names, nil
	}

	boardModel := detectBoard()
	logger.Info("Detecting board for LED control", "board_model", boardModel)

	switch {
	case strings.Contains(boardModel, "NanoPC-T6"):
		names = [pattern.Width]string{"usr_led", "sys_led"}
	case strings.Contains(boardModel, "Orange Pi"):
		names = [pattern.Width]string{"", "", "green_led", "blue_led"}
	case strings.Contains(boardModel, "Raspberry Pi"):
		names = [pattern.Width]string{"PWR", "", "ACT"}
	default:
		return names, fmt.Errorf("no sysfs LED mapping for board %q; set backend.sysfs_leds", boardModel)
	}
	return names, nil
}

// detectBoard reads the device tree model to identify the board.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}

	// Device tree model contains null bytes, trim them
	return strings.TrimRight(string(data), "\x00")
}
