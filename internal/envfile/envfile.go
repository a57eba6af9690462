// Package envfile loads PROACT_* settings from .env files so they can be
// kept next to a project without exporting them in the shell.
// Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadAll loads each file in priority order. The first file that defines a
// variable wins, and nothing overrides the existing environment.
// Missing files are ignored; read failures are collected and returned.
func LoadAll(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if err := Load(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load reads a .env file and sets any variables not already in the environment.
// Returns nil if the file doesn't exist.
func Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	vars, err := Parse(file)
	if err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	for _, kv := range vars {
		if _, set := os.LookupEnv(kv[0]); !set {
			_ = os.Setenv(kv[0], kv[1])
		}
	}
	return nil
}

// Parse returns the KEY/VALUE pairs in r in file order.
// Blank lines, comments and malformed lines are skipped.
func Parse(r io.Reader) ([][2]string, error) {
	var vars [][2]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := parseEnvLine(line); ok {
			vars = append(vars, [2]string{key, value})
		}
	}
	return vars, scanner.Err()
}

// parseEnvLine extracts KEY=VALUE from a line, dropping an optional export
// prefix and one pair of matching quotes around the value.
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
