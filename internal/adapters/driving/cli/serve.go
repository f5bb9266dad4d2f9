package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sharepoint-mcp/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sharepoint-mcp/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over stdio (the default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // G115: fd fits in int
		logger.Warn("stdin is a terminal; %s expects an MCP client on stdin/stdout", mcp.ServerName)
	}

	logger.Info("starting %s %s for site %q", mcp.ServerName, version, cfg.SiteID)

	server := mcp.NewServer(source, version)
	err := server.Run(cmd.Context(), &sdk.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("%s stopped", mcp.ServerName)
	return nil
}
