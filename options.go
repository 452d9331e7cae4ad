package movelab

import (
	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/domain/contract"
	"github.com/movelabhq/movelab/infrastructure/provider"
	"github.com/movelabhq/movelab/internal/config"
	"github.com/movelabhq/movelab/internal/log"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	app       config.AppConfig
	logger    *log.Logger
	explainer provider.Explainer
	node      contract.NodeClient
	compiler  service.PackageCompiler
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		app: config.NewAppConfig(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig replaces the whole application configuration. Options applied
// after this one override individual fields.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.app = cfg
	}
}

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDBURL("sqlite:///" + path))
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDBURL(dsn))
	}
}

// WithDataDir sets the data directory for the database and uploaded images.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDataDir(dir))
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the API keys for HTTP write authentication.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithAPIKeys(keys))
	}
}

// WithOpenAI sets an OpenAI-compatible endpoint as the explanation provider.
// baseURL may be empty for the official API.
func WithOpenAI(apiKey, baseURL string) Option {
	return func(c *clientConfig) {
		c.explainer = provider.NewOpenAIExplainer(apiKey, baseURL)
	}
}

// WithExplainer sets a custom explanation provider.
func WithExplainer(e provider.Explainer) Option {
	return func(c *clientConfig) {
		c.explainer = e
	}
}

// WithNodeClient sets a custom chain node client for the explorer.
func WithNodeClient(n contract.NodeClient) Option {
	return func(c *clientConfig) {
		c.node = n
	}
}

// WithCompiler sets a custom package compiler.
func WithCompiler(pc service.PackageCompiler) Option {
	return func(c *clientConfig) {
		c.compiler = pc
	}
}

// WithHighlightStyle sets the syntax highlighting style for rendered steps.
func WithHighlightStyle(style string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithHighlightStyle(style))
	}
}

// WithMaxImageBytes sets the upload size limit for step images.
func WithMaxImageBytes(n int64) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithMaxImageBytes(n))
	}
}
