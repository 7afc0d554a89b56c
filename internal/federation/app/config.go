package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
)

// ErrMissingSessionSecret is returned when neither PROVIDER_ID_SESSION_SECRET
// nor PROVIDER_CLIENT_SECRET is set.
var ErrMissingSessionSecret = errors.New("session secret is not configured")

type Config struct {
	Env                  string        `env:"ENV"                      envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"                envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"               envDefault:"json"`
	Port                 int           `env:"PORT"                     envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD"    envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL"    envDefault:"1h"`
	DatabaseFile         string        `env:"FEDERATION_DATABASE_FILE" envDefault:"federation.db"`

	HealthBaseURL        string `env:"HEALTH_BASE_URL"        envDefault:"https://moph.id.th"`
	ProviderBaseURL      string `env:"PROVIDER_BASE_URL"      envDefault:"https://provider.id.th"`
	HealthClientID       string `env:"HEALTH_CLIENT_ID"`
	HealthClientSecret   string `env:"HEALTH_CLIENT_SECRET"`
	ProviderClientID     string `env:"PROVIDER_CLIENT_ID"`
	ProviderClientSecret string `env:"PROVIDER_CLIENT_SECRET"`

	// RedirectURI is optional; when empty it is derived per request.
	RedirectURI     string        `env:"HEALTH_REDIRECT_URI"`
	SessionSecret   string        `env:"PROVIDER_ID_SESSION_SECRET"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT"     envDefault:"10s"`
	LandingPath     string        `env:"PROFILE_LANDING_PATH" envDefault:"/provider-id/profile"`
	SessionMaxAge   time.Duration `env:"SESSION_MAX_AGE"      envDefault:"1h"`
	StateBinding    bool          `env:"STATE_BINDING"        envDefault:"true"`
	DebugExchange   bool          `env:"DEBUG_EXCHANGE"       envDefault:"false"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.ProviderClientSecret
	}
	if cfg.SessionSecret == "" {
		return Config{}, ErrMissingSessionSecret
	}

	return cfg, nil
}

// Secure reports whether cookies must carry the Secure attribute.
func (c Config) Secure() bool {
	return c.Env == "prod" || c.Env == "production"
}

func (c Config) HealthCredentials() healthsdk.Credentials {
	return healthsdk.Credentials{ClientID: c.HealthClientID, ClientSecret: c.HealthClientSecret}
}

func (c Config) ProviderCredentials() healthsdk.Credentials {
	return healthsdk.Credentials{ClientID: c.ProviderClientID, ClientSecret: c.ProviderClientSecret}
}
