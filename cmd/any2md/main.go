// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the any2md CLI.
// Implements: prd001-discovery, prd002-conversion, prd003-registry,
//             prd004-catalog, prd005-pipeline (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the any2md CLI.
var rootCmd = &cobra.Command{
	Use:   "any2md",
	Short: "Batch document-to-Markdown conversion with change detection",
	Long: `any2md converts heterogeneous documents (plain text, Markdown, office
formats, PDF) into normalized Markdown artifacts, and skips inputs that
have not changed since the last run. Artifacts feed downstream
text-consuming pipelines; an optional SQLite catalog makes them
searchable.

Each operation is a subcommand: convert runs a batch, index and search
manage the artifact catalog, and registry inspects the change-detection
state.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./any2md.yaml or ~/.config/any2md/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("any2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "any2md"))
		}
	}

	viper.SetEnvPrefix("ANY2MD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
