package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/sharepoint-mcp/internal/adapters/driving/cli"
	"github.com/custodia-labs/sharepoint-mcp/internal/config"
	"github.com/custodia-labs/sharepoint-mcp/internal/connectors/microsoft"
	"github.com/custodia-labs/sharepoint-mcp/internal/connectors/microsoft/sharepoint"
	"github.com/custodia-labs/sharepoint-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-mcp/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	cli.SetServices(&cli.Services{
		NewSource: func(ctx context.Context, cfg *config.Config) driven.DocumentSource {
			return sharepoint.New(cfg, microsoft.NewClient(ctx, cfg))
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}
