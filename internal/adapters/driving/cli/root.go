package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-mcp/internal/config"
	"github.com/custodia-labs/sharepoint-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-mcp/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// configPath is the optional TOML config file.
	configPath string

	// newSource builds the document source once configuration is resolved.
	newSource SourceFactory

	// Resolved before any command runs.
	cfg    *config.Config
	source driven.DocumentSource
)

// SourceFactory builds the document source for a resolved configuration.
type SourceFactory func(ctx context.Context, cfg *config.Config) driven.DocumentSource

// Services holds the dependencies injected into CLI commands.
type Services struct {
	NewSource SourceFactory
}

// SetServices injects dependencies for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	newSource = s.NewSource
}

// rootCmd is the base command. With no subcommand it serves MCP over stdio.
var rootCmd = &cobra.Command{
	Use:   "sharepoint-mcp",
	Short: "MCP server for SharePoint documents",
	Long: `sharepoint-mcp exposes the documents of one SharePoint site to MCP clients
over stdio: sites, libraries, folders and documents as resources, plus a
search tool and prompt templates.

Credentials come from TENANT_ID, CLIENT_ID, CLIENT_SECRET and SITE_ID, or
from a TOML file given with --config.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// No configuration needed.
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentPreRunE = setup
	rootCmd.Version = version

	rootCmd.AddCommand(versionCmd)
}

// setup resolves configuration and builds the document source.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if missing := loaded.MissingCredentials(); len(missing) > 0 {
		logger.Warn("missing configuration: %s; upstream calls will fail until it is set",
			strings.Join(missing, ", "))
	}

	if newSource == nil {
		return errors.New("document source not configured")
	}

	cfg = loaded
	source = newSource(cmd.Context(), loaded)
	return nil
}
