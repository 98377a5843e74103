// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container selects and drives a container runtime for delegated
// document conversion.
// Implements: prd002-conversion R5.4-R5.8 (container runtime strategy);
//
//	docs/ARCHITECTURE § Conversion.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides the container operations the converter needs: runtime
// availability, image presence, and piping a document through an image.
type Runtime interface {
	// Name returns the runtime binary name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// HasImage returns nil when the named image exists locally, or an
	// error describing the failure.
	HasImage(image string) error

	// Pipe runs the image with stdin connected to input and returns the
	// captured stdout. Stderr is folded into the returned error.
	Pipe(image string, input io.Reader) (string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCapture(name string, args []string, stdin io.Reader) (stdout, stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunCapture(name string, args []string, stdin io.Reader) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// runtime implements Runtime for one container binary. Docker and podman
// share the logic and differ only in the subcommand that checks image
// presence.
type runtime struct {
	bin        string
	imageCheck []string // e.g. ["image", "inspect"] for docker
	exec       executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) HasImage(image string) error {
	args := append(append([]string{}, r.imageCheck...), image)
	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Pipe(image string, input io.Reader) (string, error) {
	args := []string{"run", "--rm", "-i", image}
	stdout, stderr, err := r.exec.RunCapture(r.bin, args, input)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return "", fmt.Errorf("%s run %s: %w: %s", r.bin, image, err, msg)
		}
		return "", fmt.Errorf("%s run %s: %w", r.bin, image, err)
	}
	return stdout, nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:        binDocker,
		imageCheck: []string{"image", "inspect"},
		exec:       exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:        binPodman,
		imageCheck: []string{"image", "exists"},
		exec:       exec,
	}
}

var defaultExec = osExecutor{}

// Docker returns the docker runtime without checking availability; call
// Available before use when the choice was forced by configuration.
func Docker() Runtime { return newDockerRuntime(defaultExec) }

// Podman returns the podman runtime without checking availability.
func Podman() Runtime { return newPodmanRuntime(defaultExec) }

// DetectRuntime tries docker first and falls back to podman. Returns an
// error when neither runtime is operational.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
