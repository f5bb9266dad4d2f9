package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-mcp/internal/adapters/driving/mcp"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List SharePoint sites",
	Args:  cobra.NoArgs,
	RunE:  runSites,
}

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List document libraries of the configured site",
	Args:  cobra.NoArgs,
	RunE:  runLibraries,
}

var lsCmd = &cobra.Command{
	Use:   "ls [folder-id]",
	Short: "List a folder's contents (root when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get [document-id]",
	Short: "Show a document's metadata and content",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

// searchMax is the --max flag of search.
var searchMax int

func init() {
	searchCmd.Flags().IntVarP(&searchMax, "max", "n", mcp.DefaultMaxResults, "maximum number of results")

	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(librariesCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSites(cmd *cobra.Command, _ []string) error {
	sites, err := source.ListSites(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), sites)
}

func runLibraries(cmd *cobra.Command, _ []string) error {
	libraries, err := source.ListLibraries(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), libraries)
}

func runList(cmd *cobra.Command, args []string) error {
	var folderID string
	if len(args) == 1 {
		folderID = args[0]
	}

	items, err := source.ListFolderContents(cmd.Context(), folderID)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), items)
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, err := source.GetDocumentContent(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if doc.Textual {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), doc.Text())
		return err
	}
	return printJSON(cmd.OutOrStdout(), doc)
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit := searchMax
	if limit <= 0 {
		limit = mcp.DefaultMaxResults
	}

	hits, err := source.SearchDocuments(cmd.Context(), args[0], limit)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), hits)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
