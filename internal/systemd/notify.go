// Package systemd reports service readiness and liveness to systemd.
package systemd

import (
	"log/slog"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
)

// Notifier sends sd_notify messages. Outside a Type=notify unit every call
// is a no-op.
type Notifier struct {
	logger *slog.Logger
	notify func(state string) (bool, error)

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewNotifier creates a notifier that writes to $NOTIFY_SOCKET.
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger: logger,
		notify: func(state string) (bool, error) {
			return daemon.SdNotify(false, state)
		},
	}
}

// Ready signals startup completion with a human-readable status line.
func (n *Notifier) Ready(status string) {
	n.send(daemon.SdNotifyReady + "\nSTATUS=" + status)
}

// StartWatchdog pings systemd at half the configured WatchdogSec.
func (n *Notifier) StartWatchdog() {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		n.logger.Warn("Invalid systemd watchdog settings", "error", err)
		return
	}
	if interval == 0 {
		return
	}
	n.startWatchdog(interval / 2)
}

func (n *Notifier) startWatchdog(every time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stop != nil {
		return
	}
	n.stop = make(chan struct{})
	n.done = make(chan struct{})

	n.logger.Debug("systemd watchdog enabled", "interval", every)
	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				n.send(daemon.SdNotifyWatchdog)
			}
		}
	}(n.stop, n.done)
}

// Stop signals shutdown and ends the watchdog loop.
func (n *Notifier) Stop() {
	n.mu.Lock()
	stop, done := n.stop, n.done
	n.stop, n.done = nil, nil
	n.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	n.send(daemon.SdNotifyStopping)
}

func (n *Notifier) send(state string) {
	sent, err := n.notify(state)
	if err != nil {
		n.logger.Warn("sd_notify failed", "error", err)
		return
	}
	if sent {
		n.logger.Debug("sd_notify sent", "state", state)
	}
}
