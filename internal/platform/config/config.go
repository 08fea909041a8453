// Package config assembles runtime configuration from defaults, an optional
// .env file, and environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultStoreBackend    = "memory"
	defaultTelegramAPIBase = "https://api.telegram.org"
	defaultTelegramTimeout = 10 * time.Second
	defaultPhoneCountry    = "218"
	defaultDeliveryPrice   = 20.0
	defaultNotifyQueueSize = 64
	defaultNotifyWorkers   = 2
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreBackendMemory    = "memory"
	StoreBackendFirestore = "firestore"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	PubSub        PubSubConfig
	Telegram      TelegramConfig
	Notifications NotificationConfig
	Delivery      DeliveryConfig
	Features      FeatureFlags
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend      string
	ProjectID    string
	EmulatorHost string
	SeedOnBoot   bool
}

// PubSubConfig configures the optional order-event topic. Publishing is
// enabled only when both fields are set.
type PubSubConfig struct {
	ProjectID string
	Topic     string
}

// Enabled reports whether order events should be mirrored to Pub/Sub.
func (c PubSubConfig) Enabled() bool {
	return strings.TrimSpace(c.ProjectID) != "" && strings.TrimSpace(c.Topic) != ""
}

// TelegramConfig configures the Telegram bot transport.
type TelegramConfig struct {
	BotToken    string
	APIBaseURL  string
	Timeout     time.Duration
	CountryCode string
}

// Enabled reports whether Telegram delivery is configured.
func (c TelegramConfig) Enabled() bool {
	return strings.TrimSpace(c.BotToken) != ""
}

// NotificationConfig sizes the background dispatch worker.
type NotificationConfig struct {
	QueueSize int
	Workers   int
}

// DeliveryConfig carries pricing fallbacks.
type DeliveryConfig struct {
	DefaultPrice float64
}

// FeatureFlags toggle optional behaviour without redeploying.
type FeatureFlags struct {
	StrictStatusTransitions bool
}

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups.
// Values in the map take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided
// maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration by combining defaults, .env overrides,
// and environment variables. A missing .env file is not an error.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := godotenv.Read(options.envFile)
	if err != nil {
		dotEnv = nil
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnv != nil {
			if value, ok := dotEnv[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "SERVER_PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Store: StoreConfig{
			Backend:      strings.ToLower(stringWithDefault(lookup, "STORE_BACKEND", defaultStoreBackend)),
			ProjectID:    stringWithDefault(lookup, "FIRESTORE_PROJECT_ID", ""),
			EmulatorHost: stringWithDefault(lookup, "FIRESTORE_EMULATOR_HOST", ""),
			SeedOnBoot:   boolWithDefault(lookup, "STORE_SEED_ON_BOOT", true),
		},
		PubSub: PubSubConfig{
			ProjectID: stringWithDefault(lookup, "PUBSUB_PROJECT_ID", ""),
			Topic:     stringWithDefault(lookup, "PUBSUB_ORDER_TOPIC", ""),
		},
		Telegram: TelegramConfig{
			BotToken:    stringWithDefault(lookup, "TELEGRAM_BOT_TOKEN", ""),
			APIBaseURL:  stringWithDefault(lookup, "TELEGRAM_API_BASE_URL", defaultTelegramAPIBase),
			Timeout:     durationWithDefault(lookup, "TELEGRAM_TIMEOUT", defaultTelegramTimeout),
			CountryCode: stringWithDefault(lookup, "PHONE_COUNTRY_CODE", defaultPhoneCountry),
		},
		Notifications: NotificationConfig{
			QueueSize: intWithDefault(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
			Workers:   intWithDefault(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		},
		Delivery: DeliveryConfig{
			DefaultPrice: floatWithDefault(lookup, "DELIVERY_DEFAULT_PRICE", defaultDeliveryPrice),
		},
		Features: FeatureFlags{
			StrictStatusTransitions: boolWithDefault(lookup, "FEATURE_STRICT_TRANSITIONS", false),
		},
	}

	// Pub/Sub project defaults to the Firestore project when unspecified.
	if cfg.PubSub.ProjectID == "" && cfg.PubSub.Topic != "" {
		cfg.PubSub.ProjectID = cfg.Store.ProjectID
	}

	return cfg, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func floatWithDefault(lookup func(string) (string, bool), key string, fallback float64) float64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
