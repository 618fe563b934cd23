package authkit

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full configuration surface of authkit. Zero values are not
// usable; start from [New] (which applies defaults) or [LoadConfig].
type Config struct {
	Token    TokenConfig    `envPrefix:"AUTHKIT_TOKEN_"`
	Session  SessionConfig  `envPrefix:"AUTHKIT_SESSION_"`
	Provider ProviderConfig `envPrefix:"AUTHKIT_PROVIDER_"`
	Demo     DemoConfig     `envPrefix:"AUTHKIT_DEMO_"`
	Audit    AuditConfig    `envPrefix:"AUTHKIT_AUDIT_"`
	Metrics  MetricsConfig  `envPrefix:"AUTHKIT_METRICS_"`
}

// TokenConfig controls session token issuance.
type TokenConfig struct {
	// TTL is how long issued tokens stay valid.
	TTL time.Duration `env:"TTL" envDefault:"24h"`
	// Secret is the HMAC key tokens are signed with. The default is a
	// development-only key; deployments must override it.
	Secret string `env:"SECRET" envDefault:"coursia-dev-secret"`
	Issuer string `env:"ISSUER" envDefault:"coursia"`
}

// SessionConfig controls the persisted-session key layout.
type SessionConfig struct {
	// RedisPrefix is prepended to auth_token, auth_user, and
	// registered_users. Empty by default.
	RedisPrefix string `env:"REDIS_PREFIX"`
}

// ProviderConfig controls federated sign-in handshakes.
type ProviderConfig struct {
	// PollInterval is how often a handshake checks whether the user has
	// closed the authentication surface.
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
}

// DemoConfig is the reserved demo identity that bypasses the
// registered-users directory on login.
type DemoConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
	Email    string `env:"EMAIL" envDefault:"demo@coursia.app"`
	Password string `env:"PASSWORD" envDefault:"demo123"`
	Name     string `env:"NAME" envDefault:"Demo Learner"`
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool `env:"ENABLED" envDefault:"false"`
	BufferSize int  `env:"BUFFER_SIZE" envDefault:"1024"`
	DropIfFull bool `env:"DROP_IF_FULL" envDefault:"true"`
}

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled                 bool `env:"ENABLED" envDefault:"false"`
	EnableLatencyHistograms bool `env:"LATENCY_HISTOGRAMS" envDefault:"false"`
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL:    24 * time.Hour,
			Secret: "coursia-dev-secret",
			Issuer: "coursia",
		},
		Provider: ProviderConfig{
			PollInterval: time.Second,
		},
		Demo: DemoConfig{
			Enabled:  true,
			Email:    "demo@coursia.app",
			Password: "demo123",
			Name:     "Demo Learner",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// LoadConfig reads configuration from a .env file (when present) and the
// environment on top of the defaults.
func LoadConfig() (Config, error) {
	// Missing .env is fine; the environment alone may be complete.
	_ = godotenv.Load()

	cfg := defaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Token.TTL <= 0 {
		return errors.New("Token TTL must be > 0")
	}
	if c.Token.Secret == "" {
		return errors.New("Token Secret required")
	}

	if c.Provider.PollInterval <= 0 {
		return errors.New("Provider PollInterval must be > 0")
	}
	if c.Provider.PollInterval > time.Minute {
		return errors.New("Provider PollInterval too coarse to detect a closed surface")
	}

	if c.Demo.Enabled {
		if c.Demo.Email == "" {
			return errors.New("Demo Email required when Demo is enabled")
		}
		if c.Demo.Password == "" {
			return errors.New("Demo Password required when Demo is enabled")
		}
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	return nil
}
