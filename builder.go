package authkit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/coursia/authkit/channel"
	"github.com/coursia/authkit/session"
	"github.com/coursia/authkit/token"
)

// Builder assembles a [Service]. Configure it during initialization, call
// Build once, and discard it.
type Builder struct {
	config    Config
	redis     redis.UniversalClient
	opener    channel.Opener
	providers []channel.ProviderSpec
	auditSink AuditSink
	logger    *slog.Logger

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the Redis client the service persists sessions through.
// Required.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithOpener sets how provider sign-in surfaces are created. Leaving it
// unset makes every SignInWithProvider resolve as blocked, which is the
// correct behavior for headless deployments.
func (b *Builder) WithOpener(opener channel.Opener) *Builder {
	b.opener = opener
	return b
}

// WithProviders replaces the default Google and GitHub provider set.
func (b *Builder) WithProviders(specs ...channel.ProviderSpec) *Builder {
	b.providers = specs
	return b
}

// WithAuditSink sets the destination for audit events and enables auditing.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func (b *Builder) WithLogger(log *slog.Logger) *Builder {
	b.logger = log
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles latency histogram collection.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, assembles the service, and restores
// any persisted session. A builder can build at most once.
func (b *Builder) Build() (*Service, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tokens, err := token.NewManager(token.Config{
		TTL:    cfg.Token.TTL,
		Secret: []byte(cfg.Token.Secret),
		Issuer: cfg.Token.Issuer,
	})
	if err != nil {
		return nil, err
	}

	log := b.logger
	if log == nil {
		log = slog.Default()
	}

	specs := b.providers
	if len(specs) == 0 {
		specs = []channel.ProviderSpec{
			channel.GoogleProvider(),
			channel.GitHubProvider(),
		}
	}
	providers := make(map[string]channel.ProviderSpec, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, errors.New("provider spec without a name")
		}
		providers[spec.Name] = spec
	}

	s := &Service{
		cfg:       cfg,
		log:       log,
		tokens:    tokens,
		store:     session.NewStoreWithPrefix(b.redis, cfg.Session.RedisPrefix),
		providers: providers,
		opener:    b.opener,
		metrics:   NewMetrics(cfg.Metrics),
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
	}

	s.restore(context.Background())

	b.built = true
	return s, nil
}
