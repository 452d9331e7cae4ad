// Package config provides application configuration.
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables; nested structs use an
// underscore delimiter (e.g. EXPLAIN_BASE_URL).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.movelab
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/movelab.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of valid API keys for mutating routes.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// CORSOrigins is a comma-separated list of allowed CORS origins.
	// Env: CORS_ORIGINS (default: *)
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`

	// HighlightStyle is the chroma style used for rendered code.
	// Env: HIGHLIGHT_STYLE (default: github)
	HighlightStyle string `envconfig:"HIGHLIGHT_STYLE" default:"github"`

	// MaxImageBytes is the step-image upload size limit.
	// Env: MAX_IMAGE_BYTES (default: 5 MiB)
	MaxImageBytes int64 `envconfig:"MAX_IMAGE_BYTES"`

	// Explain configures the AI explanation proxy backend.
	Explain ExplainEnv `envconfig:"EXPLAIN"`

	// Chain configures the blockchain node connection.
	Chain ChainEnv `envconfig:"CHAIN"`

	// Toolchain configures the Move compiler adapter.
	Toolchain ToolchainEnv `envconfig:"TOOLCHAIN"`
}

// ExplainEnv holds environment configuration for the explanation endpoint.
type ExplainEnv struct {
	// BaseURL is the OpenAI-compatible API base URL.
	// Env: EXPLAIN_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the completion model identifier.
	// Env: EXPLAIN_MODEL (default: gpt-4o-mini)
	Model string `envconfig:"MODEL" default:"gpt-4o-mini"`

	// APIKey is the API key for authentication.
	// Env: EXPLAIN_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: EXPLAIN_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`

	// MaxRetries is the maximum number of retries.
	// Env: EXPLAIN_MAX_RETRIES (default: 3)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3"`

	// MaxTokens is the completion token limit.
	// Env: EXPLAIN_MAX_TOKENS (default: 1024)
	MaxTokens int `envconfig:"MAX_TOKENS" default:"1024"`
}

// ChainEnv holds environment configuration for the blockchain node.
type ChainEnv struct {
	// NodeURL is the node REST API URL.
	// Env: CHAIN_NODE_URL
	NodeURL string `envconfig:"NODE_URL"`

	// Network is the target network name.
	// Env: CHAIN_NETWORK (default: devnet)
	Network string `envconfig:"NETWORK" default:"devnet"`

	// Timeout is the node request timeout in seconds.
	// Env: CHAIN_TIMEOUT (default: 30)
	Timeout float64 `envconfig:"TIMEOUT" default:"30"`
}

// ToolchainEnv holds environment configuration for the compiler adapter.
type ToolchainEnv struct {
	// Binary is the compiler binary name or path.
	// Env: TOOLCHAIN_BINARY (default: move)
	Binary string `envconfig:"BINARY" default:"move"`

	// Timeout is the compile timeout in seconds.
	// Env: TOOLCHAIN_TIMEOUT (default: 120)
	Timeout float64 `envconfig:"TIMEOUT" default:"120"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "MOVELAB" would require MOVELAB_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadConfig loads .env (if present) then environment variables into an AppConfig.
func LoadConfig(envFile string) (AppConfig, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return AppConfig{}, err
	}
	env, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return env.ToAppConfig(), nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = cfg.Apply(WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = cfg.Apply(WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = cfg.Apply(WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = cfg.Apply(WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = cfg.Apply(WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = cfg.Apply(WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.APIKeys != "" {
		cfg = cfg.Apply(WithAPIKeys(ParseList(e.APIKeys)))
	}
	if e.CORSOrigins != "" {
		cfg = cfg.Apply(WithCORSOrigins(ParseList(e.CORSOrigins)))
	}
	cfg = cfg.Apply(WithHighlightStyle(e.HighlightStyle))
	if e.MaxImageBytes > 0 {
		cfg = cfg.Apply(WithMaxImageBytes(e.MaxImageBytes))
	}

	cfg = cfg.Apply(WithExplainEndpoint(e.Explain.ToEndpoint()))
	cfg = cfg.Apply(WithChainConfig(e.Chain.ToChainConfig()))
	cfg = cfg.Apply(WithToolchainConfig(e.Toolchain.ToToolchainConfig()))

	return cfg
}

// ToEndpoint converts ExplainEnv to ExplainEndpoint.
func (e ExplainEnv) ToEndpoint() ExplainEndpoint {
	opts := []ExplainOption{
		WithExplainModel(e.Model),
		WithExplainTimeout(time.Duration(e.Timeout * float64(time.Second))),
		WithExplainMaxRetries(e.MaxRetries),
		WithExplainMaxTokens(e.MaxTokens),
	}
	if e.BaseURL != "" {
		opts = append(opts, WithExplainBaseURL(e.BaseURL))
	}
	if e.APIKey != "" {
		opts = append(opts, WithExplainAPIKey(e.APIKey))
	}
	return NewExplainEndpointWithOptions(opts...)
}

// ToChainConfig converts ChainEnv to ChainConfig.
func (c ChainEnv) ToChainConfig() ChainConfig {
	opts := []ChainOption{
		WithNetwork(c.Network),
		WithNodeTimeout(time.Duration(c.Timeout * float64(time.Second))),
	}
	if c.NodeURL != "" {
		opts = append(opts, WithNodeURL(c.NodeURL))
	}
	return NewChainConfigWithOptions(opts...)
}

// ToToolchainConfig converts ToolchainEnv to ToolchainConfig.
func (t ToolchainEnv) ToToolchainConfig() ToolchainConfig {
	cfg := NewToolchainConfig()
	if t.Binary != "" {
		cfg = cfg.WithBinary(t.Binary)
	}
	if t.Timeout > 0 {
		cfg = cfg.WithTimeout(time.Duration(t.Timeout * float64(time.Second)))
	}
	return cfg
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

// ParseList parses a comma-separated string into trimmed non-empty entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
