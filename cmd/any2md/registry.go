package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/any2md/internal/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and maintain the file registry",
	Long: `Registry manages the change-detection state persisted in
file_registry.json. Use subcommands to list entries, export them to
YAML or JSON, or prune entries whose source files no longer exist.`,
}

// --- list subcommand ---

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry entries",
	RunE:  runRegistryList,
}

func runRegistryList(cmd *cobra.Command, args []string) error {
	dir := settingString(cmd, "processed-dir", "processed_dir")
	reg := registry.NewStore(nil).Load(dir)
	if len(reg) == 0 {
		fmt.Println("Registry is empty.")
		return nil
	}

	paths := make([]string, 0, len(reg))
	for path := range reg {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	rows := make([][]string, 0, len(paths))
	for _, path := range paths {
		fp := reg[path]
		rows = append(rows, []string{
			path,
			shortHash(fp.Hash),
			fmt.Sprintf("%d", fp.Size),
			time.Unix(int64(fp.MTime), 0).UTC().Format(time.RFC3339),
		})
	}
	fmt.Println(renderTable(
		[]string{"Path", "Hash", "Size", "Modified"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
	fmt.Printf("%d entries\n", len(rows))
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

// --- export subcommand ---

var registryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the registry to YAML or JSON on stdout",
	RunE:  runRegistryExport,
}

func runRegistryExport(cmd *cobra.Command, args []string) error {
	dir := settingString(cmd, "processed-dir", "processed_dir")
	reg := registry.NewStore(nil).Load(dir)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "":
		data, err := yaml.Marshal(reg)
		if err != nil {
			return fmt.Errorf("encoding registry: %w", err)
		}
		os.Stdout.Write(data)
	case "json":
		data, err := json.MarshalIndent(reg, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding registry: %w", err)
		}
		os.Stdout.Write(data)
		fmt.Println()
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

// --- prune subcommand ---

var registryPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop registry entries whose source files no longer exist",
	RunE:  runRegistryPrune,
}

func runRegistryPrune(cmd *cobra.Command, args []string) error {
	dir := settingString(cmd, "processed-dir", "processed_dir")
	store := registry.NewStore(nil)
	reg := store.Load(dir)

	pruned := 0
	for path := range reg {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			delete(reg, path)
			fmt.Printf("pruned %s\n", path)
			pruned++
		}
	}
	if pruned == 0 {
		fmt.Println("Nothing to prune.")
		return nil
	}

	if err := store.Save(dir, reg); err != nil {
		return err
	}
	fmt.Printf("%d entries pruned\n", pruned)
	return nil
}

func init() {
	// Shared flag on the parent command, inherited by subcommands.
	registryCmd.PersistentFlags().String("processed-dir", "processed", "directory holding the registry")

	registryExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryExportCmd)
	registryCmd.AddCommand(registryPruneCmd)

	rootCmd.AddCommand(registryCmd)
}
