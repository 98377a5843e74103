// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	captureFunc   func(name string, args []string, stdin io.Reader) (string, string, error)
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunCapture(name string, args []string, stdin io.Reader) (string, string, error) {
	if m.captureFunc != nil {
		return m.captureFunc(name, args, stdin)
	}
	return "", "", nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestHasImage(t *testing.T) {
	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name: "docker image exists",
			mkRT: func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			cmds: map[string]bool{"docker image inspect markitdown:latest": true},
		},
		{
			name:    "docker image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			wantErr: true,
		},
		{
			name: "podman image exists",
			mkRT: func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			cmds: map[string]bool{"podman image exists markitdown:latest": true},
		},
		{
			name:    "podman image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := tt.mkRT(&mockExecutor{runnableCmds: tt.cmds})
			err := rt.HasImage("markitdown:latest")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "markitdown:latest") {
					t.Errorf("error should mention image name, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPipe(t *testing.T) {
	tests := []struct {
		name        string
		mkRT        func(*mockExecutor) Runtime
		input       string
		captureFunc func(string, []string, io.Reader) (string, string, error)
		wantOut     string
		wantErrSub  string
	}{
		{
			name:  "docker pipes stdin to captured stdout",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			input: "document bytes",
			captureFunc: func(name string, args []string, stdin io.Reader) (string, string, error) {
				if name != "docker" {
					return "", "", errors.New("expected docker binary")
				}
				want := []string{"run", "--rm", "-i", "markitdown:latest"}
				if strings.Join(args, " ") != strings.Join(want, " ") {
					return "", "", errors.New("unexpected args: " + strings.Join(args, " "))
				}
				data, _ := io.ReadAll(stdin)
				return "converted: " + string(data), "", nil
			},
			wantOut: "converted: document bytes",
		},
		{
			name: "failure folds stderr into the error",
			mkRT: func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			captureFunc: func(string, []string, io.Reader) (string, string, error) {
				return "", "unsupported encoding\n", errors.New("exit status 1")
			},
			wantErrSub: "unsupported encoding",
		},
		{
			name: "failure without stderr keeps exit error",
			mkRT: func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			captureFunc: func(string, []string, io.Reader) (string, string, error) {
				return "", "", errors.New("exit status 137")
			},
			wantErrSub: "exit status 137",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := tt.mkRT(&mockExecutor{captureFunc: tt.captureFunc})
			out, err := rt.Pipe("markitdown:latest", strings.NewReader(tt.input))
			if tt.wantErrSub != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErrSub) {
					t.Errorf("error = %v, want substring %q", err, tt.wantErrSub)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.wantOut {
				t.Errorf("got output %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestRuntimeName(t *testing.T) {
	if got := Docker().Name(); got != "docker" {
		t.Errorf("docker runtime name = %q", got)
	}
	if got := Podman().Name(); got != "podman" {
		t.Errorf("podman runtime name = %q", got)
	}
}
