package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/any2md/internal/catalog"
	"github.com/pdiddy/any2md/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index converted artifacts into the searchable catalog",
	Long: `Index scans the processed directory and ingests Markdown artifacts
into a SQLite catalog with FTS5 full-text indexing. Unchanged artifacts
are skipped on subsequent runs.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	dir := settingString(cmd, "processed-dir", "processed_dir")

	store, err := catalog.NewStore(dir, catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d artifact(s) failed indexing", summary.Failed)
	}
	return nil
}

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{MaxResults: viper.GetInt("max_results")}
}

func init() {
	indexCmd.Flags().String("processed-dir", "processed", "directory holding Markdown artifacts and the catalog")

	rootCmd.AddCommand(indexCmd)
}
