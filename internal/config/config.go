package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	fileType = "yaml"

	// GlobalFile is the config file name inside [Dir].
	GlobalFile = "config.yaml"
	// ProjectFile is the per-project config file at the target root.
	ProjectFile = ".proact.yaml"

	// DefaultOutputDir is where generated docs go, relative to the target.
	DefaultOutputDir = "docs"
	envPrefix        = "PROACT"
)

// Author overrides the VCS identity when set.
type Author struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// Config holds resolved settings for one run.
type Config struct {
	OutputDir       string `mapstructure:"output_dir"`
	LearningsSource string `mapstructure:"learnings_source"`
	Author          Author `mapstructure:"author"`
	Color           string `mapstructure:"color"`

	// Files lists the config files that were read, in merge order.
	Files []string `mapstructure:"-"`
}

// Load resolves configuration for target. Missing config files are not an
// error; malformed ones are.
func Load(target string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("learnings_source", "")
	v.SetDefault("author.name", "")
	v.SetDefault("author.email", "")
	v.SetDefault("color", "auto")

	var (
		read          []string
		learningsBase string
	)
	candidates := []string{filepath.Join(target, ProjectFile)}
	if dir := Dir(); dir != "" {
		candidates = append([]string{filepath.Join(dir, GlobalFile)}, candidates...)
	}
	for _, path := range candidates {
		file, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if file == nil {
			continue
		}
		if err := v.MergeConfigMap(file.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging config %s: %w", path, err)
		}
		if file.IsSet("learnings_source") {
			learningsBase = filepath.Dir(path)
		}
		read = append(read, path)
	}
	if os.Getenv(envPrefix+"_LEARNINGS_SOURCE") != "" {
		learningsBase = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Files = read
	cfg.LearningsSource = resolvePath(learningsBase, expandHome(cfg.LearningsSource))
	return &cfg, nil
}

// readFile parses one config file on its own so callers can tell which keys
// it sets. A missing file yields nil.
func readFile(path string) (*viper.Viper, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	file := viper.New()
	file.SetConfigType(fileType)
	if err := file.ReadConfig(f); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return file, nil
}

// resolvePath anchors a relative path at base, the directory of the config
// file that set it. Values from the environment keep the working directory.
func resolvePath(base, path string) string {
	if path == "" || base == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
