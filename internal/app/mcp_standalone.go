package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"pageforge/internal/config"
	mcpserver "pageforge/internal/mcp"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the builder as a standalone MCP server on stdin/stdout with no GUI.
// Posts live only for the lifetime of the process. There is no user to ask,
// so destructive tools run without approval.
func ServeMCP(cfg config.Config, log zerolog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	emitter := noopEmitter{}
	builder := newBuilder(cfg, log, emitter)

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter:         emitter,
		Builder:         builder,
		Logger:          &log,
		RequireApproval: false,
	})

	errc := make(chan error, 1)
	go func() { errc <- mcpSrv.ServeStdio() }()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	case <-ctx.Done():
		builder.WaitGenerations(context.Background())
		return nil
	}
}
