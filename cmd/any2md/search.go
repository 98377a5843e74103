package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/any2md/internal/catalog"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the artifact catalog",
	Long: `Search queries the artifact catalog with FTS5 full-text search and
renders matches as a table, best match first. Without a query it lists
cataloged artifacts by name. Run 'any2md index' first to build the
catalog.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	dir := settingString(cmd, "processed-dir", "processed_dir")

	store, err := catalog.NewStore(dir, catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	opts := catalog.QueryOptions{
		Query:      strings.Join(args, " "),
		MaxResults: limit,
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []catalog.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Artifact,
			excerpt(r.Title, 30),
			excerpt(r.Content, 60),
			r.IndexedAt,
		})
	}
	fmt.Println(renderTable(
		[]string{"Artifact", "Title", "Excerpt", "Indexed"},
		rows, nil))
	fmt.Printf("%d results\n", len(results))
	return nil
}

// excerpt collapses whitespace and truncates s for table display.
func excerpt(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

func init() {
	searchCmd.Flags().String("processed-dir", "processed", "directory holding Markdown artifacts and the catalog")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
