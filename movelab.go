// Package movelab provides a library for building and serving interactive
// Move smart-contract workshops.
//
// Movelab stores step-by-step workshops with annotated source code, enforces
// editable regions in playground code, renders annotations and diffs for
// display, and proxies code explanations to an AI completion endpoint.
//
// Basic usage:
//
//	client, err := movelab.New(
//	    movelab.WithSQLite(".movelab/data.db"),
//	    movelab.WithOpenAI(os.Getenv("OPENAI_API_KEY"), ""),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	w, err := client.Workshops.CreateWorkshop(ctx, "Counter basics", "Build a counter")
//
//	decision, err := client.Playground.Decide(service.GuardQuery{
//	    Source:    source,
//	    Key:       "character",
//	    StartLine: 3,
//	    EndLine:   3,
//	})
package movelab

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/infrastructure/api"
	"github.com/movelabhq/movelab/infrastructure/chain"
	"github.com/movelabhq/movelab/infrastructure/persistence"
	"github.com/movelabhq/movelab/infrastructure/provider"
	"github.com/movelabhq/movelab/infrastructure/render"
	"github.com/movelabhq/movelab/infrastructure/toolchain"
	"github.com/movelabhq/movelab/internal/config"
	"github.com/movelabhq/movelab/internal/database"
	"github.com/movelabhq/movelab/internal/log"
	"github.com/movelabhq/movelab/internal/mcp"
)

// ErrClientClosed indicates the client has already been closed.
var ErrClientClosed = errors.New("movelab: client closed")

// Client is the main entry point for the movelab library.
//
// Access resources via struct fields:
//
//	client.Workshops.GetWorkshop(ctx, id)
//	client.Playground.Regions(source, 0)
//	client.Explain.Explain(ctx, code, question)
type Client struct {
	Workshops  *service.WorkshopService
	Playground *service.PlaygroundService
	Packages   *service.PackageService
	Explorer   *service.ExplorerService
	Explain    *service.ExplainService

	cfg    config.AppConfig
	db     database.Database
	logger *log.Logger
	closed atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.NewLogger(cfg.app)
	}

	if err := cfg.app.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if err := cfg.app.EnsurePackageDir(); err != nil {
		return nil, fmt.Errorf("create package directory: %w", err)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.app.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("migrate: %w", err), errClose)
	}

	renderer := render.NewRenderer(cfg.app.HighlightStyle())

	explainer := cfg.explainer
	if explainer == nil {
		if endpoint := cfg.app.Explain(); endpoint.IsConfigured() {
			explainer = provider.NewOpenAIExplainer(
				endpoint.APIKey(),
				endpoint.BaseURL(),
				provider.WithModel(endpoint.Model()),
				provider.WithMaxRetries(endpoint.MaxRetries()),
				provider.WithMaxTokens(endpoint.MaxTokens()),
				provider.WithBackoff(endpoint.InitialDelay()),
			)
		}
	}

	node := cfg.node
	if node == nil {
		if chainCfg := cfg.app.Chain(); chainCfg.IsConfigured() {
			node = chain.NewClient(chainCfg.NodeURL(), chain.WithTimeout(chainCfg.Timeout()))
		}
	}

	compiler := cfg.compiler
	if compiler == nil {
		tc := cfg.app.Toolchain()
		compiler = toolchain.NewCompiler(
			toolchain.WithBinary(tc.Binary()),
			toolchain.WithTimeout(tc.Timeout()),
			toolchain.WithScratchDir(cfg.app.PackageDir()),
		)
	}

	client := &Client{
		cfg:    cfg.app,
		db:     db,
		logger: logger,
	}

	client.Workshops = service.NewWorkshopService(
		persistence.NewWorkshopStore(db),
		persistence.NewImageStore(db),
		renderer,
		cfg.app.MaxImageBytes(),
	)
	client.Playground = service.NewPlaygroundService()
	client.Packages = service.NewPackageService(compiler)
	client.Explorer = service.NewExplorerService(node)
	client.Explain = service.NewExplainService(explainer, renderer)

	return client, nil
}

// Close releases the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("movelab client closed")
	return nil
}

// Config returns the client's resolved configuration.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger {
	return c.logger
}

// Server builds an HTTP server exposing the client's services.
func (c *Client) Server(version string) *api.Server {
	return api.NewServer(c.cfg, c.logger, api.Services{
		Workshops:  c.Workshops,
		Playground: c.Playground,
		Packages:   c.Packages,
		Explorer:   c.Explorer,
		Explain:    c.Explain,
	}, version)
}

// MCPServer builds an MCP server exposing workshop search and explanation
// tools over stdio.
func (c *Client) MCPServer(version string) *mcp.Server {
	return mcp.NewServer(c.Workshops, c.Explain, version)
}
