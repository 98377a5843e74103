// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/any2md/pkg/types"
)

func fp(hash string, mtime float64, size int64) types.FileFingerprint {
	return types.FileFingerprint{Hash: hash, MTime: mtime, Size: size, Path: "/src/a.md"}
}

func TestNeedsProcessing(t *testing.T) {
	base := fp("h1", 100.5, 10)

	tests := []struct {
		name        string
		stored      *types.FileFingerprint
		current     types.FileFingerprint
		incremental bool
		want        bool
	}{
		{"full mode ignores matching entry", &base, base, false, true},
		{"full mode ignores missing entry", nil, base, false, true},
		{"incremental new file", nil, base, true, true},
		{"incremental unchanged", &base, base, true, false},
		{"incremental hash only differs", &base, fp("h2", 100.5, 10), true, true},
		{"incremental mtime only differs", &base, fp("h1", 101.5, 10), true, true},
		{"incremental size only differs", &base, fp("h1", 100.5, 11), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := types.Registry{}
			if tt.stored != nil {
				reg["/src/a.md"] = *tt.stored
			}

			got := NeedsProcessing("/src/a.md", tt.current, reg, tt.incremental)

			assert.Equal(t, tt.want, got)
			// Refresh-on-examine: the entry always reflects the current
			// fingerprint after the decision, in both branches.
			assert.Equal(t, tt.current, reg["/src/a.md"])
		})
	}
}

func TestNeedsProcessingRefreshesChangedEntry(t *testing.T) {
	old := fp("old", 100, 10)
	current := fp("new", 200, 20)
	reg := types.Registry{"/src/a.md": old}

	assert.True(t, NeedsProcessing("/src/a.md", current, reg, true))
	assert.Equal(t, current, reg["/src/a.md"])
}

func TestNeedsProcessingFullModePopulatesRegistry(t *testing.T) {
	current := fp("h1", 100, 10)
	reg := types.Registry{}

	assert.True(t, NeedsProcessing("/src/a.md", current, reg, false))
	assert.Len(t, reg, 1)
	assert.Equal(t, current, reg["/src/a.md"])
}
