package config

import "time"

const (
	defaultHTTPAddress    = ":8080"
	defaultTokenIssuer    = "sortr"
	defaultTokenDuration  = 7 * 24 * time.Hour
	defaultRequestTimeout = 30 * time.Second
	defaultLogLevel       = "debug"
	defaultImageDir       = "uploads"
	defaultMaxImageBytes  = 5 << 20
	defaultMaxOpenConns   = 20

	defaultAuthAttempts = 5
	defaultAuthWindow   = 15 * time.Minute

	defaultLimiterSweepInterval = time.Minute
	defaultHealthProbeInterval  = 10 * time.Second

	defaultGoogleUserInfoURL    = "https://www.googleapis.com/oauth2/v3/userinfo"
	defaultGithubUserInfoURL    = "https://api.github.com/user"
	defaultMicrosoftUserInfoURL = "https://graph.microsoft.com/v1.0/me"
)

// defaultConfig is merged last and only fills what no other source set.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
			LogLevel:      defaultLogLevel,
		},
		Storage: Storage{
			DB: DB{MaxOpenConns: defaultMaxOpenConns},
			Files: Files{
				ImageDir:      defaultImageDir,
				MaxImageBytes: defaultMaxImageBytes,
			},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		RateLimit: RateLimit{
			AuthAttempts: defaultAuthAttempts,
			AuthWindow:   defaultAuthWindow,
		},
		OAuth: OAuth{
			GoogleUserInfoURL:    defaultGoogleUserInfoURL,
			GithubUserInfoURL:    defaultGithubUserInfoURL,
			MicrosoftUserInfoURL: defaultMicrosoftUserInfoURL,
		},
		Workers: Workers{
			LimiterSweepInterval: defaultLimiterSweepInterval,
			HealthProbeInterval:  defaultHealthProbeInterval,
		},
	}
}
