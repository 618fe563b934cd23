package authkit

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "token ttl zero invalid",
			mutate: func(c *Config) {
				c.Token.TTL = 0
			},
			wantValid: false,
		},
		{
			name: "token ttl negative invalid",
			mutate: func(c *Config) {
				c.Token.TTL = -time.Hour
			},
			wantValid: false,
		},
		{
			name: "token secret empty invalid",
			mutate: func(c *Config) {
				c.Token.Secret = ""
			},
			wantValid: false,
		},
		{
			name: "poll interval zero invalid",
			mutate: func(c *Config) {
				c.Provider.PollInterval = 0
			},
			wantValid: false,
		},
		{
			name: "poll interval over a minute invalid",
			mutate: func(c *Config) {
				c.Provider.PollInterval = 2 * time.Minute
			},
			wantValid: false,
		},
		{
			name: "poll interval fast valid",
			mutate: func(c *Config) {
				c.Provider.PollInterval = 10 * time.Millisecond
			},
			wantValid: true,
		},
		{
			name: "demo disabled allows empty fields",
			mutate: func(c *Config) {
				c.Demo.Enabled = false
				c.Demo.Email = ""
				c.Demo.Password = ""
			},
			wantValid: true,
		},
		{
			name: "demo enabled without email invalid",
			mutate: func(c *Config) {
				c.Demo.Email = ""
			},
			wantValid: false,
		},
		{
			name: "demo enabled without password invalid",
			mutate: func(c *Config) {
				c.Demo.Password = ""
			},
			wantValid: false,
		},
		{
			name: "audit enabled without buffer invalid",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
		{
			name: "audit disabled ignores buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = false
				c.Audit.BufferSize = 0
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("AUTHKIT_TOKEN_TTL", "2h")
	t.Setenv("AUTHKIT_TOKEN_SECRET", "env-secret")
	t.Setenv("AUTHKIT_SESSION_REDIS_PREFIX", "coursia:")
	t.Setenv("AUTHKIT_DEMO_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Token.TTL != 2*time.Hour {
		t.Fatalf("expected 2h TTL, got %v", cfg.Token.TTL)
	}
	if cfg.Token.Secret != "env-secret" {
		t.Fatalf("expected env secret, got %q", cfg.Token.Secret)
	}
	if cfg.Session.RedisPrefix != "coursia:" {
		t.Fatalf("expected prefix, got %q", cfg.Session.RedisPrefix)
	}
	if cfg.Demo.Enabled {
		t.Fatal("expected demo disabled")
	}
}

func TestLoadConfigRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("AUTHKIT_TOKEN_TTL", "0s")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for zero TTL")
	}
}
