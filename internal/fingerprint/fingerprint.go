// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fingerprint computes content fingerprints for change detection.
// A fingerprint combines a SHA-256 content hash with the file size and
// modification time; all three must match for a file to count as unchanged.
// Implements: prd003-registry R1 (fingerprinting);
//
//	docs/ARCHITECTURE § Change Detection.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pdiddy/any2md/internal/logging"
	"github.com/pdiddy/any2md/pkg/types"
)

// Calculator produces FileFingerprints. Construct with NewCalculator so
// fallback events reach the run's logger.
type Calculator struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewCalculator returns a Calculator reporting through logger. A nil
// logger discards fallback warnings.
func NewCalculator(logger *slog.Logger) *Calculator {
	return &Calculator{
		logger: logging.NewComponentLogger(logger, "fingerprint"),
		now:    time.Now,
	}
}

// Compute stats path and hashes its full content. Two reads of an
// unchanged file yield identical fingerprints, except on the fallback
// path below.
//
// A stat failure is returned to the caller. A content-read failure after
// a successful stat is not: the hash degrades to a wall-clock fallback
// value that almost never matches a prior one, so the file is treated as
// changed on the next comparison. Unreadable files therefore reprocess
// every run instead of surfacing the I/O problem; the fallback is logged
// at Warn to keep it visible.
func (c *Calculator) Compute(path string) (types.FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.FileFingerprint{}, fmt.Errorf("stat %s: %w", path, err)
	}

	return types.FileFingerprint{
		Hash:  c.hashContent(path),
		MTime: float64(info.ModTime().UnixNano()) / 1e9,
		Size:  info.Size(),
		Path:  path,
	}, nil
}

func (c *Calculator) hashContent(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return c.fallback(path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return c.fallback(path, err)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// fallback fabricates a timestamp hash. The format matches registries
// written by earlier releases, so old entries keep comparing correctly.
func (c *Calculator) fallback(path string, cause error) string {
	c.logger.Warn("content hash failed, using timestamp fallback",
		"path", path, "error", cause)
	return fmt.Sprintf("timestamp-%d", c.now().Unix())
}
