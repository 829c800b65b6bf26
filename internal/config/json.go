package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file. Durations are written as strings ("15m").
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		Profile       string   `json:"profile"`
		LogLevel      string   `json:"log_level"`
		PublicBaseURL string   `json:"public_base_url"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`

		Files struct {
			ImageDir      string `json:"image_dir"`
			MaxImageBytes int64  `json:"max_image_bytes"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		TrustedProxies []string `json:"trusted_proxies"`
	} `json:"server,omitempty"`

	RateLimit struct {
		AuthAttempts int      `json:"auth_attempts"`
		AuthWindow   Duration `json:"auth_window"`
	} `json:"rate_limit,omitempty"`

	OAuth struct {
		GoogleUserInfoURL    string `json:"google_userinfo_url"`
		GithubUserInfoURL    string `json:"github_userinfo_url"`
		MicrosoftUserInfoURL string `json:"microsoft_userinfo_url"`
	} `json:"oauth,omitempty"`

	Workers struct {
		LimiterSweepInterval Duration `json:"limiter_sweep_interval"`
		HealthProbeInterval  Duration `json:"health_probe_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
			Profile:       jsonCfg.App.Profile,
			LogLevel:      jsonCfg.App.LogLevel,
			PublicBaseURL: jsonCfg.App.PublicBaseURL,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
			Files: Files{
				ImageDir:      jsonCfg.Storage.Files.ImageDir,
				MaxImageBytes: jsonCfg.Storage.Files.MaxImageBytes,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			TrustedProxies: jsonCfg.Server.TrustedProxies,
		},
		RateLimit: RateLimit{
			AuthAttempts: jsonCfg.RateLimit.AuthAttempts,
			AuthWindow:   time.Duration(jsonCfg.RateLimit.AuthWindow),
		},
		OAuth: OAuth{
			GoogleUserInfoURL:    jsonCfg.OAuth.GoogleUserInfoURL,
			GithubUserInfoURL:    jsonCfg.OAuth.GithubUserInfoURL,
			MicrosoftUserInfoURL: jsonCfg.OAuth.MicrosoftUserInfoURL,
		},
		Workers: Workers{
			LimiterSweepInterval: time.Duration(jsonCfg.Workers.LimiterSweepInterval),
			HealthProbeInterval:  time.Duration(jsonCfg.Workers.HealthProbeInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
