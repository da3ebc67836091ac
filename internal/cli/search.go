package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopfront/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog once and print the matches",
	Long: `Search the catalog once and print every match with its route.

Examples:
  shopfront search fingerprint
  shopfront search "face reader" --api http://localhost:8088/api`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}

	cfg, _, err := loadConfig(nil)
	if err != nil {
		return err
	}
	closeLog := setupLogging(cfg.UISettings.LogFile)
	defer closeLog()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd.Context(), cfg)
	defer cancel()

	products, err := client.SearchProducts(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(products) == 0 {
		fmt.Fprintln(out, search.NoResultsText(query))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCATEGORY\tROUTE")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Title, p.CategoryPath(), p.Route())
	}
	return w.Flush()
}
