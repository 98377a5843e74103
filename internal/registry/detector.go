// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import "github.com/pdiddy/any2md/pkg/types"

// NeedsProcessing reports whether path must be (re)converted, and
// refreshes reg[path] with current in both branches. The registry tracks
// "last seen" for every examined file independent of the decision, so the
// persisted state after a run covers examined-but-unchanged files too.
//
// In full mode the answer is always true. In incremental mode a file is
// selected when it is absent from the registry or when any of hash,
// mtime, or size differs from the stored fingerprint. Hash equality alone
// is not trusted: timestamp fallback hashes can collide, and the extra
// fields catch metadata-only touches.
func NeedsProcessing(path string, current types.FileFingerprint, reg types.Registry, incremental bool) bool {
	prev, seen := reg[path]
	reg[path] = current

	if !incremental || !seen {
		return true
	}
	return prev.Hash != current.Hash ||
		prev.MTime != current.MTime ||
		prev.Size != current.Size
}
