// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"log/slog"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultLogLevel        = "INFO"
	DefaultExplainTimeout  = 60 * time.Second
	DefaultExplainRetries  = 3
	DefaultExplainDelay    = 2 * time.Second
	DefaultExplainBackoff  = 2.0
	DefaultExplainTokens   = 1024
	DefaultNodeTimeout     = 30 * time.Second
	DefaultCompileTimeout  = 120 * time.Second
	DefaultMaxImageBytes   = 5 << 20
	DefaultPackageSubdir   = "packages"
	DefaultHighlightStyle  = "github"
	DefaultWorkshopPageLen = 50
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// ExplainEndpoint configures the AI explanation proxy backend.
type ExplainEndpoint struct {
	baseURL      string
	model        string
	apiKey       string
	timeout      time.Duration
	maxRetries   int
	initialDelay time.Duration
	backoff      float64
	maxTokens    int
}

// NewExplainEndpoint creates an ExplainEndpoint with defaults.
func NewExplainEndpoint() ExplainEndpoint {
	return ExplainEndpoint{
		timeout:      DefaultExplainTimeout,
		maxRetries:   DefaultExplainRetries,
		initialDelay: DefaultExplainDelay,
		backoff:      DefaultExplainBackoff,
		maxTokens:    DefaultExplainTokens,
	}
}

// BaseURL returns the base URL for the endpoint.
func (e ExplainEndpoint) BaseURL() string { return e.baseURL }

// Model returns the model identifier.
func (e ExplainEndpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e ExplainEndpoint) APIKey() string { return e.apiKey }

// Timeout returns the request timeout.
func (e ExplainEndpoint) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e ExplainEndpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e ExplainEndpoint) InitialDelay() time.Duration { return e.initialDelay }

// Backoff returns the retry backoff multiplier.
func (e ExplainEndpoint) Backoff() float64 { return e.backoff }

// MaxTokens returns the completion token limit.
func (e ExplainEndpoint) MaxTokens() int { return e.maxTokens }

// IsConfigured returns true if the endpoint can serve explanations.
func (e ExplainEndpoint) IsConfigured() bool {
	return e.apiKey != ""
}

// ExplainOption is a functional option for ExplainEndpoint.
type ExplainOption func(*ExplainEndpoint)

// WithExplainBaseURL sets the base URL.
func WithExplainBaseURL(url string) ExplainOption {
	return func(e *ExplainEndpoint) { e.baseURL = url }
}

// WithExplainModel sets the model.
func WithExplainModel(model string) ExplainOption {
	return func(e *ExplainEndpoint) { e.model = model }
}

// WithExplainAPIKey sets the API key.
func WithExplainAPIKey(key string) ExplainOption {
	return func(e *ExplainEndpoint) { e.apiKey = key }
}

// WithExplainTimeout sets the request timeout.
func WithExplainTimeout(d time.Duration) ExplainOption {
	return func(e *ExplainEndpoint) { e.timeout = d }
}

// WithExplainMaxRetries sets the retry count.
func WithExplainMaxRetries(n int) ExplainOption {
	return func(e *ExplainEndpoint) { e.maxRetries = n }
}

// WithExplainMaxTokens sets the completion token limit.
func WithExplainMaxTokens(n int) ExplainOption {
	return func(e *ExplainEndpoint) { e.maxTokens = n }
}

// NewExplainEndpointWithOptions creates an ExplainEndpoint with options.
func NewExplainEndpointWithOptions(opts ...ExplainOption) ExplainEndpoint {
	e := NewExplainEndpoint()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// ChainConfig configures the blockchain node connection.
type ChainConfig struct {
	nodeURL string
	network string
	timeout time.Duration
}

// NewChainConfig creates a ChainConfig with defaults.
func NewChainConfig() ChainConfig {
	return ChainConfig{
		network: "devnet",
		timeout: DefaultNodeTimeout,
	}
}

// NodeURL returns the node REST API URL.
func (c ChainConfig) NodeURL() string { return c.nodeURL }

// Network returns the target network name.
func (c ChainConfig) Network() string { return c.network }

// Timeout returns the node request timeout.
func (c ChainConfig) Timeout() time.Duration { return c.timeout }

// IsConfigured returns true if a node URL is set.
func (c ChainConfig) IsConfigured() bool { return c.nodeURL != "" }

// ChainOption is a functional option for ChainConfig.
type ChainOption func(*ChainConfig)

// WithNodeURL sets the node REST API URL.
func WithNodeURL(url string) ChainOption {
	return func(c *ChainConfig) { c.nodeURL = url }
}

// WithNetwork sets the target network name.
func WithNetwork(network string) ChainOption {
	return func(c *ChainConfig) { c.network = network }
}

// WithNodeTimeout sets the node request timeout.
func WithNodeTimeout(d time.Duration) ChainOption {
	return func(c *ChainConfig) { c.timeout = d }
}

// NewChainConfigWithOptions creates a ChainConfig with options.
func NewChainConfigWithOptions(opts ...ChainOption) ChainConfig {
	c := NewChainConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ToolchainConfig configures the Move compiler adapter.
type ToolchainConfig struct {
	binary  string
	timeout time.Duration
}

// NewToolchainConfig creates a ToolchainConfig with defaults.
func NewToolchainConfig() ToolchainConfig {
	return ToolchainConfig{
		binary:  "move",
		timeout: DefaultCompileTimeout,
	}
}

// Binary returns the compiler binary name or path.
func (t ToolchainConfig) Binary() string { return t.binary }

// Timeout returns the compile timeout.
func (t ToolchainConfig) Timeout() time.Duration { return t.timeout }

// WithBinary returns a new config with the given compiler binary.
func (t ToolchainConfig) WithBinary(binary string) ToolchainConfig {
	t.binary = binary
	return t
}

// WithTimeout returns a new config with the given compile timeout.
func (t ToolchainConfig) WithTimeout(d time.Duration) ToolchainConfig {
	t.timeout = d
	return t
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host           string
	port           int
	dataDir        string
	dbURL          string
	logLevel       string
	logFormat      LogFormat
	apiKeys        []string
	explain        ExplainEndpoint
	chain          ChainConfig
	toolchain      ToolchainConfig
	highlightStyle string
	maxImageBytes  int64
	corsOrigins    []string
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".movelab"
	}
	return filepath.Join(home, ".movelab")
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:           DefaultHost,
		port:           DefaultPort,
		dataDir:        dataDir,
		dbURL:          "sqlite:///" + filepath.Join(dataDir, "movelab.db"),
		logLevel:       DefaultLogLevel,
		logFormat:      LogFormatPretty,
		apiKeys:        []string{},
		explain:        NewExplainEndpoint(),
		chain:          NewChainConfig(),
		toolchain:      NewToolchainConfig(),
		highlightStyle: DefaultHighlightStyle,
		maxImageBytes:  DefaultMaxImageBytes,
		corsOrigins:    []string{"*"},
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the configured API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// Explain returns the AI explanation endpoint config.
func (c AppConfig) Explain() ExplainEndpoint { return c.explain }

// Chain returns the blockchain node config.
func (c AppConfig) Chain() ChainConfig { return c.chain }

// Toolchain returns the compiler adapter config.
func (c AppConfig) Toolchain() ToolchainConfig { return c.toolchain }

// HighlightStyle returns the chroma style name for code rendering.
func (c AppConfig) HighlightStyle() string { return c.highlightStyle }

// MaxImageBytes returns the upload size limit for step images.
func (c AppConfig) MaxImageBytes() int64 { return c.maxImageBytes }

// CORSOrigins returns the allowed CORS origins for the browser frontend.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// PackageDir returns the scratch directory for compile scaffolding.
func (c AppConfig) PackageDir() string {
	return filepath.Join(c.dataDir, DefaultPackageSubdir)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// EnsurePackageDir creates the package scratch directory if it doesn't exist.
func (c AppConfig) EnsurePackageDir() error {
	return os.MkdirAll(c.PackageDir(), 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory and rebases the default DB path.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		if c.dbURL == "" || filepath.Base(trimSQLitePrefix(c.dbURL)) == "movelab.db" {
			c.dbURL = "sqlite:///" + filepath.Join(dir, "movelab.db")
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithExplainEndpoint sets the explanation endpoint.
func WithExplainEndpoint(e ExplainEndpoint) AppConfigOption {
	return func(c *AppConfig) { c.explain = e }
}

// WithChainConfig sets the blockchain node config.
func WithChainConfig(cc ChainConfig) AppConfigOption {
	return func(c *AppConfig) { c.chain = cc }
}

// WithToolchainConfig sets the compiler adapter config.
func WithToolchainConfig(t ToolchainConfig) AppConfigOption {
	return func(c *AppConfig) { c.toolchain = t }
}

// WithHighlightStyle sets the chroma style name.
func WithHighlightStyle(style string) AppConfigOption {
	return func(c *AppConfig) {
		if style != "" {
			c.highlightStyle = style
		}
	}
}

// WithMaxImageBytes sets the image upload size limit.
func WithMaxImageBytes(n int64) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.maxImageBytes = n
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Sensitive values are masked or shown as counts.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("node_url", c.chain.NodeURL()),
		slog.String("network", c.chain.Network()),
		slog.String("explain_model", c.explain.Model()),
		slog.Bool("explain_configured", c.explain.IsConfigured()),
		slog.Int("api_keys_count", len(c.apiKeys)),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if len(c.dbURL) >= 7 && c.dbURL[:7] == "sqlite:" {
		return c.dbURL
	}
	return "postgres://***@***"
}

func trimSQLitePrefix(url string) string {
	if len(url) >= 10 && url[:10] == "sqlite:///" {
		return url[10:]
	}
	return url
}
