package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/gorewood/proact/internal/output"
)

// ErrInvalidOutput is returned when git prints something that is not UTF-8.
var ErrInvalidOutput = errors.New("git output is not valid UTF-8")

// RunIn executes a git command with dir as its working directory and
// returns its trimmed stdout. An empty dir uses the process working
// directory. Returns an *output.ExitError on failure.
func RunIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemErrorWithCause("git not found: ensure git is installed and in PATH", err)
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return "", output.NewSystemErrorWithCause("git command failed", ErrInvalidOutput)
	}
	return strings.TrimSpace(string(out)), nil
}

// ConfigValue returns the value of a git configuration key as seen from dir,
// so repository-local settings take precedence over global ones.
// `git config` exits 1 for unset keys, which surfaces as an error here.
func ConfigValue(ctx context.Context, dir, key string) (string, error) {
	return RunIn(ctx, dir, "config", "--get", key)
}
