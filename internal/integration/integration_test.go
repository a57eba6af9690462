//go:build integration

// Package integration provides integration tests for the proact CLI.
// These tests build the binary and run it against real git repositories.
//
// Run with: go test -tags=integration ./internal/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testRepo is a helper for creating and managing test git repositories.
type testRepo struct {
	t      *testing.T
	dir    string
	binary string
	env    []string
}

// newTestRepo builds the proact binary and initializes a git repo with a
// repo-local identity.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	binDir := t.TempDir()

	binary := filepath.Join(binDir, "proact")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/proact")
	buildCmd.Dir = findProjectRoot(t)
	buildCmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build proact: %v\n%s", err, output)
	}

	repo := &testRepo{
		t:      t,
		dir:    dir,
		binary: binary,
		env: append(os.Environ(),
			"PROACT_CONFIG_HOME="+t.TempDir(),
			"GIT_CONFIG_GLOBAL="+filepath.Join(binDir, "gitconfig"),
			"GIT_CONFIG_NOSYSTEM=1",
			"PROACT_AUTHOR_NAME=",
			"PROACT_AUTHOR_EMAIL=",
			"PROACT_OUTPUT_DIR=",
			"PROACT_LEARNINGS_SOURCE=",
		),
	}

	repo.git("init", "--initial-branch=main")
	repo.git("config", "user.email", "test@example.com")
	repo.git("config", "user.name", "Test User")

	return repo
}

// findProjectRoot locates the project root by finding go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// git runs a git command in the test repo.
func (r *testRepo) git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	cmd.Env = r.env
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return strings.TrimSpace(string(output))
}

// createFile creates a file with the given content.
func (r *testRepo) createFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("failed to write file %s: %v", name, err)
	}
}

// readFile returns a file's content relative to the repo.
func (r *testRepo) readFile(name string) string {
	r.t.Helper()

	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// proact runs the binary from the repo directory and returns stdout,
// stderr and the exit code.
func (r *testRepo) proact(args ...string) (string, string, int) {
	r.t.Helper()

	cmd := exec.Command(r.binary, args...)
	cmd.Dir = r.dir
	cmd.Env = r.env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if err != nil {
		r.t.Fatalf("failed to run proact: %v", err)
	}
	return stdout.String(), stderr.String(), code
}

func TestGenerate_UsesRepoIdentityAndManifest(t *testing.T) {
	repo := newTestRepo(t)
	repo.createFile("Cargo.toml", "[package]\nname = \"demo\"\nlicense = \"Apache-2.0\"\n")

	stdout, stderr, code := repo.proact(".")
	if code != 0 {
		t.Fatalf("exit code %d\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}

	license := repo.readFile("LICENSE")
	if !strings.Contains(license, "Test User") {
		t.Errorf("LICENSE should use the repo git identity:\n%s", license)
	}
	instructions := repo.readFile("docs/ai_agent_instructions.md")
	if !strings.Contains(instructions, "License: Apache-2.0") {
		t.Errorf("instructions should carry the manifest license:\n%s", instructions)
	}
	if !strings.Contains(instructions, "Test User <test@example.com>") {
		t.Errorf("instructions should carry the author email:\n%s", instructions)
	}
}

func TestGenerate_SecondRunAppendsLearnings(t *testing.T) {
	repo := newTestRepo(t)

	if _, stderr, code := repo.proact("."); code != 0 {
		t.Fatalf("first run exit code %d: %s", code, stderr)
	}
	first := repo.readFile("docs/learnings.md")

	stdout, stderr, code := repo.proact(".")
	if code != 0 {
		t.Fatalf("second run exit code %d: %s", code, stderr)
	}

	second := repo.readFile("docs/learnings.md")
	if !strings.HasPrefix(second, first) {
		t.Error("first run's learnings must remain a prefix")
	}
	if strings.Count(second, "---- Added ") != 1 {
		t.Errorf("want exactly one separator:\n%s", second)
	}
	if !strings.Contains(stdout, "Appended to:") || !strings.Contains(stdout, "Overwrote:") {
		t.Errorf("summary should report append and overwrite:\n%s", stdout)
	}
}

func TestGenerate_DryRunLeavesTreeClean(t *testing.T) {
	repo := newTestRepo(t)
	repo.createFile("README.md", "# Project")
	repo.git("add", "-A")
	repo.git("commit", "-m", "Initial commit")

	stdout, stderr, code := repo.proact("-n", "--json", ".")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr)
	}

	if status := repo.git("status", "--porcelain"); status != "" {
		t.Errorf("dry-run changed the tree:\n%s", status)
	}

	var report map[string]any
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if report["dry_run"] != true {
		t.Errorf("dry_run = %v", report["dry_run"])
	}
}

func TestExitCodes(t *testing.T) {
	repo := newTestRepo(t)

	if _, _, code := repo.proact("does-not-exist"); code != 1 {
		t.Errorf("missing target exit code = %d, want 1", code)
	}

	if err := os.MkdirAll(filepath.Join(repo.dir, "docs", "learnings.md"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, stderr, code := repo.proact("."); code != 2 {
		t.Errorf("unreadable learnings exit code = %d, want 2\n%s", code, stderr)
	}
}
