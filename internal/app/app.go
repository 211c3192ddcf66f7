package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"pageforge/internal/config"
	"pageforge/internal/llm"
	mcpserver "pageforge/internal/mcp"
	"pageforge/internal/registry"
	"pageforge/internal/service"
	"pageforge/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg config.Config
	log zerolog.Logger

	builder *service.Builder

	// In-app MCP endpoint, only when mcp.http_addr is set
	mcp     *mcpserver.Server
	mcpHTTP *http.Server
}

// New creates a new App. The builder exists before Startup so bindings never
// see a nil state owner; events are dropped until the runtime context is set.
func New(cfg config.Config, log zerolog.Logger) *App {
	a := &App{cfg: cfg, log: log}
	a.builder = newBuilder(cfg, log, a)
	return a
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	wailsRuntime.LogInfo(ctx, "PageForge started")

	if addr := a.cfg.MCP.HTTPAddr; addr != "" {
		a.startMCP(ctx, addr)
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a.builder.WaitGenerations(ctx)
	if a.mcpHTTP != nil {
		if err := a.mcpHTTP.Shutdown(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mcp http shutdown")
		}
	}
}

// Emit implements service.EventEmitter over the Wails runtime.
func (a *App) Emit(_ context.Context, event string, data any) {
	if a.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(a.ctx, event, data)
}

func (a *App) startMCP(ctx context.Context, addr string) {
	a.mcp = mcpserver.New(ctx, mcpserver.Deps{
		Emitter:         a,
		Builder:         a.builder,
		Logger:          &a.log,
		RequireApproval: a.cfg.MCP.RequireApproval,
	})
	mux := http.NewServeMux()
	mux.Handle("/mcp", a.mcp.HTTPHandler())
	a.mcpHTTP = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		a.log.Info().Str("addr", addr).Msg("mcp http endpoint listening")
		if err := a.mcpHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Msg("mcp http endpoint stopped")
			wailsRuntime.LogErrorf(ctx, "MCP endpoint failed: %v", err)
		}
	}()
}

// ApproveMCPAction approves a destructive tool call requested by an agent.
func (a *App) ApproveMCPAction(actionID string) {
	if a.mcp != nil {
		a.mcp.Approve(actionID)
	}
}

// RejectMCPAction rejects a destructive tool call requested by an agent.
func (a *App) RejectMCPAction(actionID string) {
	if a.mcp != nil {
		a.mcp.Reject(actionID)
	}
}

// newBuilder wires the builder shared by the GUI and headless modes.
func newBuilder(cfg config.Config, log zerolog.Logger, emitter service.EventEmitter) *service.Builder {
	b := service.NewBuilder(service.BuilderDeps{
		Registry:         registry.Default(),
		Posts:            storage.NewPostStore(),
		Emitter:          emitter,
		Logger:           &log,
		DefaultPostTitle: cfg.Builder.DefaultPostTitle,
	})
	if gen := newGenerator(cfg.AI, log); gen != nil {
		b.SetGenerator(gen)
	}
	return b
}

func newGenerator(c config.AIConfig, log zerolog.Logger) service.TextGenerator {
	g, err := llm.NewOpenAIGenerator(llm.Options{
		APIKey:     c.ResolveAPIKey(),
		BaseURL:    c.BaseURL,
		Model:      c.Model,
		Timeout:    c.Timeout,
		MaxRetries: 2,
	})
	if err != nil {
		log.Warn().Err(err).Str("api_key_env", c.APIKeyEnv).Msg("AI text generation disabled")
		return nil
	}
	return g
}
