// Package config locates and loads proact configuration.
//
// Settings come from three layers, later layers winning: the global
// config.yaml in [Dir], the project's .proact.yaml, and PROACT_* environment
// variables.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "proact"

// Dir returns the proact configuration directory.
//
// Resolution:
//   - $PROACT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/proact if set (respects XDG on any platform)
//   - %AppData%/proact on Windows
//   - ~/.config/proact on macOS and Linux
func Dir() string {
	if dir := os.Getenv("PROACT_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// EnvFiles returns the .env files consulted before configuration is loaded,
// highest priority first.
func EnvFiles(target string) []string {
	files := []string{
		filepath.Join(target, ".env.local"),
		filepath.Join(target, ".env"),
	}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}

// TemplatesDir returns the global template override directory.
func TemplatesDir() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}
