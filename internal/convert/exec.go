// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// markitdownBin is the binary name resolved from PATH for the exec backend.
const markitdownBin = "markitdown"

// ExecConverter converts documents by running a markitdown binary
// directly, for hosts without a container runtime.
type ExecConverter struct {
	bin string
}

// NewExecConverter resolves the markitdown binary from PATH.
func NewExecConverter() (*ExecConverter, error) {
	path, err := exec.LookPath(markitdownBin)
	if err != nil {
		return nil, fmt.Errorf("%s binary not on PATH: %w", markitdownBin, err)
	}
	return &ExecConverter{bin: path}, nil
}

// Convert runs the binary against the document named by uri and returns
// its stdout. Stderr is folded into the returned error.
func (e *ExecConverter) Convert(uri string) (string, error) {
	path, err := PathFromFileURI(uri)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(e.bin, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", markitdownBin, path, err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", markitdownBin, path, err)
	}
	return stdout.String(), nil
}
