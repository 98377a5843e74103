// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one batch conversion run: discover the
// source tree, diff every file against the registry, convert what
// changed through a bounded worker pool, and persist the refreshed
// registry. A single bad document never aborts the batch; only a missing
// source directory or a contended run lock does.
// Implements: prd005-pipeline R1-R7;
//
//	docs/ARCHITECTURE § Pipeline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/pdiddy/any2md/internal/convert"
	"github.com/pdiddy/any2md/internal/discover"
	"github.com/pdiddy/any2md/internal/fingerprint"
	"github.com/pdiddy/any2md/internal/logging"
	"github.com/pdiddy/any2md/internal/registry"
	"github.com/pdiddy/any2md/pkg/types"
)

// LockFileName is the run lock created inside the processed directory.
// Two runs writing the same artifacts and registry would corrupt both.
const LockFileName = ".any2md.lock"

// ErrLocked reports that another run holds the processed directory.
var ErrLocked = errors.New("processed directory locked by another run")

// Result tallies one batch run. Discovered counts supported files found
// in the source tree; every discovered file lands in exactly one of
// Processed, Skipped, or Failed.
type Result struct {
	Discovered int
	Processed  int
	Skipped    int
	Failed     int
}

// Total returns the number of files examined during the run.
func (r Result) Total() int {
	return r.Processed + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed during the run.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Pipeline runs batch conversions. Construct with New.
type Pipeline struct {
	cfg        types.Config
	logger     *slog.Logger
	store      *registry.Store
	calc       *fingerprint.Calculator
	dispatcher *convert.Dispatcher
}

// New returns a Pipeline for cfg. converter handles office and PDF
// content and may be nil when no backend is available; text files still
// convert, delegated files fail per file. A nil logger discards
// diagnostics.
func New(cfg types.Config, converter convert.Converter, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		store:      registry.NewStore(logger),
		calc:       fingerprint.NewCalculator(logger),
		dispatcher: convert.NewDispatcher(converter, logger),
	}
}

// Run executes one batch: Discover, Diff, Process, Persist. The registry
// is owned by Run and mutated only in the sequential diff phase; workers
// touch nothing but their own file and the shared counters. Per-file
// failures are counted and logged, never returned. The error is non-nil
// only for a missing source directory, a contended run lock, or a
// canceled context.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	logger := p.logger.With(logging.FieldRunID, uuid.NewString())

	if err := os.MkdirAll(p.cfg.ProcessedDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating processed directory: %w", err)
	}
	lock := flock.New(filepath.Join(p.cfg.ProcessedDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquiring run lock: %w", err)
	}
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrLocked, p.cfg.ProcessedDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("releasing run lock failed", "error", err)
		}
	}()

	files, err := discover.Discover(p.cfg.SourceDir, logger)
	if err != nil {
		return Result{}, err
	}
	result := Result{Discovered: len(files)}

	reg := types.Registry{}
	if p.cfg.Incremental {
		reg = p.store.Load(p.cfg.ProcessedDir)
	}
	var pending []types.SourceFile
	for _, file := range files {
		fp, err := p.calc.Compute(file.Path)
		if err != nil {
			logger.Error("fingerprint failed, skipping file", "path", file.Path, "error", err)
			result.Failed++
			continue
		}
		if registry.NeedsProcessing(file.Path, fp, reg, p.cfg.Incremental) {
			pending = append(pending, file)
		} else {
			result.Skipped++
		}
	}
	logger.Info("diff complete",
		"discovered", result.Discovered,
		"pending", len(pending),
		"unchanged", result.Skipped,
		"incremental", p.cfg.Incremental)

	processed, skipped, failed := p.processAll(ctx, logger, pending)
	result.Processed += processed
	result.Skipped += skipped
	result.Failed += failed

	if err := p.store.Save(p.cfg.ProcessedDir, reg); err != nil {
		logger.Error("saving registry failed", "error", err)
	}

	logger.Info("run complete",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed)
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run interrupted: %w", err)
	}
	return result, nil
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeFailed
)

// processAll converts pending files on a bounded worker pool. Files are
// independent of each other, so the only shared state is the counters.
func (p *Pipeline) processAll(ctx context.Context, logger *slog.Logger, pending []types.SourceFile) (processed, skipped, failed int) {
	if len(pending) == 0 {
		return 0, 0, 0
	}
	workers := p.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	var counts [3]atomic.Int64
	jobs := make(chan types.SourceFile)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				counts[p.processOne(logger, file)].Add(1)
			}
		}()
	}

feed:
	for _, file := range pending {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- file:
		}
	}
	close(jobs)
	wg.Wait()

	return int(counts[outcomeProcessed].Load()),
		int(counts[outcomeSkipped].Load()),
		int(counts[outcomeFailed].Load())
}

// processOne converts a single file and writes its artifact. Failures
// stay inside this boundary.
func (p *Pipeline) processOne(logger *slog.Logger, file types.SourceFile) outcome {
	content, err := p.dispatcher.Dispatch(file)
	if err != nil {
		logger.Error("conversion failed, continuing", "path", file.Path, "error", err)
		return outcomeFailed
	}
	if content == "" {
		logger.Warn("conversion produced no content, skipping", "path", file.Path)
		return outcomeSkipped
	}
	if p.cfg.Frontmatter {
		content = convert.Frontmatter(file, content)
	}

	target := filepath.Join(p.cfg.ProcessedDir, OutputName(file.RelPath))
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		logger.Error("writing artifact failed, continuing",
			"path", file.Path, "target", target, "error", err)
		return outcomeFailed
	}
	logger.Info("converted", "path", file.Path, "artifact", filepath.Base(target))
	return outcomeProcessed
}

// OutputName flattens relPath into a single artifact name: the source
// stem, then the subdirectory components joined by underscores, then the
// .md extension. Files at the source root keep the bare stem, so
// sub/dir/c.md becomes c_sub_dir.md while b.txt becomes b.md.
func OutputName(relPath string) string {
	base := filepath.Base(relPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(relPath)
	if dir == "." || dir == string(filepath.Separator) {
		return stem + ".md"
	}
	parts := strings.Split(filepath.ToSlash(dir), "/")
	return stem + "_" + strings.Join(parts, "_") + ".md"
}
