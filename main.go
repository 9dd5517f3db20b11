package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/ledintent/cmd"
	"github.com/smazurov/ledintent/internal/api"
	"github.com/smazurov/ledintent/internal/config"
	"github.com/smazurov/ledintent/internal/events"
	"github.com/smazurov/ledintent/internal/intent"
	"github.com/smazurov/ledintent/internal/led"
	"github.com/smazurov/ledintent/internal/ledapi"
	"github.com/smazurov/ledintent/internal/logging"
	"github.com/smazurov/ledintent/internal/metrics"
	"github.com/smazurov/ledintent/internal/mqtt"
	"github.com/smazurov/ledintent/internal/nats"
	"github.com/smazurov/ledintent/internal/systemd"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8000" toml:"server.port" env:"SERVER_PORT"`

	// Backend settings
	BackendKind    string `help:"LED backend (http, memory, sysfs)" default:"http" toml:"backend.kind" env:"BACKEND_KIND"`
	BackendURL     string `help:"LedAPI base URL" default:"http://localhost:5000" toml:"backend.url" env:"BACKEND_URL"`
	BackendTimeout string `help:"LedAPI request timeout" default:"5s" toml:"backend.timeout" env:"BACKEND_TIMEOUT"`
	SysfsRoot      string `help:"sysfs LED class directory" default:"/sys/class/leds" toml:"backend.sysfs_root" env:"BACKEND_SYSFS_ROOT"`
	SysfsLEDs      string `help:"Comma-separated sysfs LED names in slot order (default: board detection)" default:"" toml:"backend.sysfs_leds" env:"BACKEND_SYSFS_LEDS"`

	// Auth settings
	AuthUsername string `help:"Basic auth username (empty disables auth)" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Features settings
	FeaturesMetrics     bool   `help:"Serve Prometheus metrics at /metrics" default:"true" toml:"features.metrics_enabled" env:"FEATURES_METRICS"`
	FeaturesLEDMirror   bool   `help:"Mirror applied patterns onto local LEDs" default:"false" toml:"features.led_mirror_enabled" env:"FEATURES_LED_MIRROR"`
	FeaturesMirrorKind  string `help:"Local mirror target (memory, sysfs)" default:"sysfs" toml:"features.led_mirror_kind" env:"FEATURES_LED_MIRROR_KIND"`
	FeaturesConfigWatch bool   `help:"Reload logging levels when the config file changes" default:"true" toml:"features.config_watch_enabled" env:"FEATURES_CONFIG_WATCH"`

	// NATS settings
	NatsEnabled bool   `help:"Accept intents and publish events over NATS" default:"false" toml:"nats.enabled" env:"NATS_ENABLED"`
	NatsURL     string `help:"External NATS server URL (empty starts an embedded server)" default:"" toml:"nats.url" env:"NATS_URL"`
	NatsPort    int    `help:"Embedded NATS server port" default:"4222" toml:"nats.port" env:"NATS_PORT"`

	// MQTT settings
	MQTTEnabled     bool   `help:"Accept intents and publish LED state over MQTT" default:"false" toml:"mqtt.enabled" env:"MQTT_ENABLED"`
	MQTTBroker      string `help:"MQTT broker URL" default:"tcp://localhost:1883" toml:"mqtt.broker" env:"MQTT_BROKER"`
	MQTTClientID    string `help:"MQTT client ID" default:"ledintent" toml:"mqtt.client_id" env:"MQTT_CLIENT_ID"`
	MQTTUsername    string `help:"MQTT username" default:"" toml:"mqtt.username" env:"MQTT_USERNAME"`
	MQTTPassword    string `help:"MQTT password" default:"" toml:"mqtt.password" env:"MQTT_PASSWORD"`
	MQTTTopicPrefix string `help:"MQTT topic prefix" default:"ledintent" toml:"mqtt.topic_prefix" env:"MQTT_TOPIC_PREFIX"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingFile    string `help:"Optional log file, rotated by size" default:"" toml:"logging.file" env:"LOGGING_FILE"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP    string `help:"HTTP access logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
	LoggingIntent  string `help:"Intent service logging level" default:"info" toml:"logging.intent" env:"LOGGING_INTENT"`
	LoggingBackend string `help:"LED backend logging level" default:"info" toml:"logging.backend" env:"LOGGING_BACKEND"`
	LoggingLED     string `help:"Local LED logging level" default:"info" toml:"logging.led" env:"LOGGING_LED"`
	LoggingConfig  string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
	LoggingNats    string `help:"NATS logging level" default:"info" toml:"logging.nats" env:"LOGGING_NATS"`
	LoggingMQTT    string `help:"MQTT logging level" default:"info" toml:"logging.mqtt" env:"LOGGING_MQTT"`
}

func (o *Options) loggingConfig() logging.Config {
	return logging.Config{
		Level:  o.LoggingLevel,
		Format: o.LoggingFormat,
		File:   o.LoggingFile,
		Modules: map[string]string{
			"api":     o.LoggingAPI,
			"http":    o.LoggingHTTP,
			"intent":  o.LoggingIntent,
			"backend": o.LoggingBackend,
			"led":     o.LoggingLED,
			"config":  o.LoggingConfig,
			"nats":    o.LoggingNats,
			"mqtt":    o.LoggingMQTT,
		},
	}
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(opts.loggingConfig())
		logger := logging.GetLogger("main")

		eventBus := events.New()

		// Mirror log records to SSE subscribers.
		logging.SetLogCallback(func(entry logging.LogEntry) {
			eventBus.Publish(api.LogEntryToEvent(entry))
		})

		timeout, err := time.ParseDuration(opts.BackendTimeout)
		if err != nil || timeout <= 0 {
			logger.Warn("Invalid backend timeout, using default", "value", opts.BackendTimeout, "default", ledapi.DefaultTimeout)
			timeout = ledapi.DefaultTimeout
		}

		gateway, err := led.New(led.Options{
			Kind:       opts.BackendKind,
			BackendURL: opts.BackendURL,
			Timeout:    timeout,
			SysfsRoot:  opts.SysfsRoot,
			SysfsLEDs:  splitList(opts.SysfsLEDs),
			Logger:     logging.GetLogger("backend"),
		})
		if err != nil {
			logger.Error("Failed to create LED backend", "error", err)
			os.Exit(1)
		}

		service := intent.NewService(intent.ServiceOptions{
			Gateway:  gateway,
			EventBus: eventBus,
			Logger:   logging.GetLogger("intent"),
		})

		var mirror *led.Mirror
		if opts.FeaturesLEDMirror {
			target, mirrorErr := led.New(led.Options{
				Kind:      opts.FeaturesMirrorKind,
				SysfsRoot: opts.SysfsRoot,
				SysfsLEDs: splitList(opts.SysfsLEDs),
				Logger:    logging.GetLogger("led"),
			})
			switch {
			case mirrorErr != nil:
				logger.Warn("LED mirror disabled", "error", mirrorErr)
			case opts.FeaturesMirrorKind == led.KindHTTP:
				logger.Warn("LED mirror target must be local, mirror disabled")
			default:
				mirror = led.NewMirror(target, eventBus, logging.GetLogger("led"))
			}
		}

		apiOpts := &api.Options{
			AuthUsername:  opts.AuthUsername,
			AuthPassword:  opts.AuthPassword,
			IntentService: service,
			EventBus:      eventBus,
		}
		if opts.FeaturesMetrics {
			apiOpts.PrometheusHandler = metrics.Handler()
		}

		server := api.NewServer(apiOpts)

		var watcher *config.Watcher[logging.Config]
		if opts.FeaturesConfigWatch && opts.Config != "" {
			watcher = config.NewConfigWatcher(opts.Config, config.LoadLoggingConfig, logging.GetLogger("config"))
			watcher.OnReload(func(cfg logging.Config) {
				logging.SetLevels(cfg)
				logger.Info("Logging levels reloaded", "level", cfg.Level)
			})
		}

		natsLogger := logging.GetLogger("nats")
		var (
			natsServer    *nats.Server
			natsResponder *nats.Responder
			natsBridge    *nats.Bridge
		)

		var mqttBridge *mqtt.Bridge
		if opts.MQTTEnabled {
			mqttBridge = mqtt.NewBridge(mqtt.Config{
				BrokerURL:   opts.MQTTBroker,
				ClientID:    opts.MQTTClientID,
				Username:    opts.MQTTUsername,
				Password:    opts.MQTTPassword,
				TopicPrefix: opts.MQTTTopicPrefix,
			}, service, eventBus, timeout+time.Second, logging.GetLogger("mqtt"))
		}

		hooks.OnStart(func() {
			if mirror != nil {
				mirror.Start()
			}

			if opts.NatsEnabled {
				natsURL := opts.NatsURL
				if natsURL == "" {
					natsServer = nats.NewServer(nats.ServerOptions{Port: opts.NatsPort, Logger: natsLogger})
					if startErr := natsServer.Start(); startErr != nil {
						logger.Error("Failed to start NATS server", "error", startErr)
						os.Exit(1)
					}
					natsURL = natsServer.ClientURL()
				}

				natsResponder = nats.NewResponder(natsURL, service, timeout+time.Second, natsLogger)
				if startErr := natsResponder.Start(); startErr != nil {
					logger.Warn("NATS responder not started", "url", natsURL, "error", startErr)
					natsResponder = nil
				}
				natsBridge = nats.NewBridge(natsURL, eventBus, natsLogger)
				if startErr := natsBridge.Start(); startErr != nil {
					logger.Warn("NATS bridge not started", "url", natsURL, "error", startErr)
					natsBridge = nil
				}
			}

			if mqttBridge != nil {
				if startErr := mqttBridge.Start(); startErr != nil {
					logger.Warn("MQTT bridge not started", "broker", opts.MQTTBroker, "error", startErr)
					mqttBridge = nil
				}
			}

			if watcher != nil {
				if startErr := watcher.Start(); startErr != nil {
					logger.Warn("Config watcher not started", "path", opts.Config, "error", startErr)
					watcher = nil
				}
			}

			notifier := systemd.NewNotifier(logging.GetLogger("main"))
			notifier.Ready(fmt.Sprintf("Serving intents on %s", opts.Port))
			notifier.StartWatchdog()
			defer notifier.Stop()

			logger.Info("Starting HTTP server", "port", opts.Port, "backend", opts.BackendKind)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping config watcher", "error", stopErr)
				}
			}
			if mqttBridge != nil {
				mqttBridge.Stop()
			}
			if natsBridge != nil {
				natsBridge.Stop()
			}
			if natsResponder != nil {
				natsResponder.Stop()
			}
			if natsServer != nil {
				natsServer.Stop()
			}
			if mirror != nil {
				mirror.Stop()
			}
			logging.Close()
		})
	})

	cli.Root().Use = "ledintent"
	cli.Root().Short = "LED intent controller"

	cli.Root().AddCommand(cmd.CreateResolveCmd())
	cli.Root().AddCommand(cmd.CreateApplyCmd())
	cli.Root().AddCommand(cmd.CreateTablesCmd())

	cli.Run()
}
