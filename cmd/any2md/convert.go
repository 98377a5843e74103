// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/any2md/internal/convert"
	"github.com/pdiddy/any2md/internal/logging"
	"github.com/pdiddy/any2md/internal/pipeline"
	"github.com/pdiddy/any2md/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert source documents to Markdown artifacts",
	Long: `Convert walks the source directory, converts supported documents
(text, Markdown, office formats, PDF) into normalized Markdown in the
processed directory, and records a fingerprint of every examined file
in the registry.

With --incremental, files whose content hash, size, and modification
time all match the registry are skipped. A single failing document is
logged and skipped; the batch continues. Only a missing source
directory aborts the run.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd)

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}

	converter, err := convert.NewConverter(cfg.Converter)
	if err != nil {
		// Text files need no backend; office/PDF files fail per file.
		logger.Warn("converter backend unavailable, office/PDF conversion disabled", "error", err)
		converter = nil
	}

	result, err := pipeline.New(cfg, converter, logger).Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "discovered: %d, processed: %d, skipped: %d, failed: %d\n",
		result.Discovered, result.Processed, result.Skipped, result.Failed)
	return nil
}

func convertConfig(cmd *cobra.Command) types.Config {
	return types.Config{
		SourceDir:    settingString(cmd, "source-dir", "source_dir"),
		ProcessedDir: settingString(cmd, "processed-dir", "processed_dir"),
		Incremental:  settingBool(cmd, "incremental", "incremental"),
		Workers:      settingInt(cmd, "workers", "workers"),
		Frontmatter:  settingBool(cmd, "frontmatter", "frontmatter"),
		Log: types.LogConfig{
			Level:  settingString(cmd, "log-level", "log_level"),
			Format: settingString(cmd, "log-format", "log_format"),
			File:   settingString(cmd, "log-file", "log_file"),
		},
		Converter: types.ConverterConfig{
			Backend: types.ConverterBackend(settingString(cmd, "backend", "backend")),
			Image:   settingString(cmd, "image", "image"),
		},
	}
}

func init() {
	convertCmd.Flags().String("source-dir", "source", "directory scanned for source documents")
	convertCmd.Flags().String("processed-dir", "processed", "directory receiving Markdown artifacts and the registry")
	convertCmd.Flags().Bool("incremental", false, "skip files whose fingerprint matches the registry")
	convertCmd.Flags().Int("workers", 4, "concurrent conversion workers")
	convertCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter to each artifact")
	convertCmd.Flags().String("backend", "auto", "conversion backend: auto, docker, podman, or markitdown")
	convertCmd.Flags().String("image", convert.DefaultImage, "container image for the container backends")
	convertCmd.Flags().String("log-level", "info", "log level: debug, info, warn, or error")
	convertCmd.Flags().String("log-format", "auto", "log format: auto, text, or json")
	convertCmd.Flags().String("log-file", "any2md.log", "log file (empty disables file logging)")

	rootCmd.AddCommand(convertCmd)
}
