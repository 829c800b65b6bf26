package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"dario.cat/mergo"
)

const (
	defaultClientAdapterAddress = "http://localhost:8080"
	defaultClientRequestTimeout = 15 * time.Second
	defaultClientDSN            = "sortr-client.db"
	defaultClientLogFile        = "sortr-client.log"
	defaultCacheTTL             = 5 * time.Minute
	defaultCacheJanitorInterval = time.Minute
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// DeviceSecret is the passphrase the persisted credential is sealed with.
	DeviceSecret string `env:"DEVICE_SECRET"`
	// LogLevel is a zerolog level name.
	LogLevel string `env:"LOG_LEVEL"`
	// PublicBaseURL renders https deep links; sortr:// links are used when empty.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// Address is the base URL of the Sortr server. A server URL stored in the
	// local database overrides it.
	Address string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientStorage contains local storage settings for the client.
type ClientStorage struct {
	// DSN is the SQLite file holding the sealed credential and settings.
	DSN string `env:"DSN"`
	// LogFile is where the client writes its log while the TUI owns the terminal.
	LogFile string `env:"LOG_FILE"`
}

// ClientCache contains read cache settings.
type ClientCache struct {
	TTL             time.Duration `env:"TTL"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL"`
}

// ClientConfig is the top-level terminal client configuration.
type ClientConfig struct {
	App     ClientApp     `envPrefix:"APP_"`
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`
	Storage ClientStorage `envPrefix:"STORAGE_"`
	Cache   ClientCache   `envPrefix:"CACHE_"`
}

// clientEnv wraps [ClientConfig] so all client variables share the CLIENT_
// prefix (e.g. CLIENT_ADAPTER_ADDRESS).
type clientEnv struct {
	Client ClientConfig `envPrefix:"CLIENT_"`
}

// GetClientConfig builds and validates the client configuration from the
// .env file, CLIENT_* environment variables, flags in args and defaults.
func GetClientConfig(args []string) (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	var fromEnv clientEnv
	if err := parseEnv(&fromEnv); err != nil {
		return nil, err
	}

	fromFlags, err := parseClientFlags(args)
	if err != nil {
		return nil, err
	}

	cfg := new(ClientConfig)
	for _, src := range []*ClientConfig{&fromEnv.Client, fromFlags, defaultClientConfig()} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, fmt.Errorf("error merging client configs: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("error validating client config: %w", err)
	}

	return cfg, nil
}

// parseClientFlags parses:
//
//	-s server base URL
//	-db local SQLite file
//	-log local log file
//	-timeout request timeout
func parseClientFlags(args []string) (*ClientConfig, error) {
	var cfg ClientConfig

	fs := flag.NewFlagSet("sortr-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Adapter.Address, "s", "", "Server base URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "timeout", 0, "Request timeout")
	fs.StringVar(&cfg.Storage.DSN, "db", "", "Local database file")
	fs.StringVar(&cfg.Storage.LogFile, "log", "", "Log file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	return &cfg, nil
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{LogLevel: defaultLogLevel},
		Adapter: ClientAdapter{
			Address:        defaultClientAdapterAddress,
			RequestTimeout: defaultClientRequestTimeout,
		},
		Storage: ClientStorage{
			DSN:     defaultClientDSN,
			LogFile: defaultClientLogFile,
		},
		Cache: ClientCache{
			TTL:             defaultCacheTTL,
			JanitorInterval: defaultCacheJanitorInterval,
		},
	}
}
