package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolateEnv keeps tests away from the user's config and git identity.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PROACT_CONFIG_HOME", t.TempDir())
	t.Setenv("PROACT_AUTHOR_NAME", "Test Author")
	t.Setenv("PROACT_AUTHOR_EMAIL", "test@example.com")
	for _, key := range []string{"PROACT_OUTPUT_DIR", "PROACT_LEARNINGS_SOURCE", "PROACT_COLOR"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key) //nolint:errcheck
	}
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	t.Cleanup(func() { version = "dev" })

	out, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "proact") {
		t.Errorf("--version output should contain 'proact': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{
		"proact",
		"Usage:",
		"--json",
		"--dry-run",
		"--output-dir",
		"--verbose",
		"metadata",
		"serve",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("--help output should contain %q: %q", expected, out)
		}
	}
}

func TestRootCommand_JSONFlag_NoTarget(t *testing.T) {
	out, _, err := execute(t, "--json")
	if err == nil {
		t.Fatal("Expected error when running with --json but no target")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' key: %v", result)
	}
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	if _, _, err := execute(t, "a", "b"); err == nil {
		t.Error("expected error for two targets")
	}
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{name: "dev build", version: "dev", commit: "none", date: "unknown", want: "dev"},
		{name: "release", version: "1.0.0", commit: "abcdef1234567", date: "2026-01-02", want: "1.0.0 (abcdef1, 2026-01-02)"},
		{name: "short commit", version: "1.0.0", commit: "abc", date: "2026-01-02", want: "1.0.0 (abc, 2026-01-02)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origV, origC, origD := version, commit, date
			t.Cleanup(func() { version, commit, date = origV, origC, origD })
			version, commit, date = tt.version, tt.commit, tt.date

			if got := buildVersion(); got != tt.want {
				t.Errorf("buildVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}
