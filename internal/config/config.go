package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFile = "tasks.json"

	OutputTable = "table"
	OutputPlain = "plain"
	OutputJSON  = "json"

	EnvConfig = "TASK_CLI_CONFIG"
	EnvFile   = "TASK_CLI_FILE"
)

type Config struct {
	File   string `yaml:"file"`
	ASCII  bool   `yaml:"ascii"`
	Output string `yaml:"output"` // table|plain|json

	// Source is the config file that was read, empty when defaults are used.
	Source string `yaml:"-"`
}

func Default() Config {
	return Config{File: DefaultFile, Output: OutputTable}
}

// Path resolves the config file location: explicit path, then
// $TASK_CLI_CONFIG, then ~/.task-cli/config.yaml.
func Path(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return expandHome(p)
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		return expandHome(env)
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".task-cli", "config.yaml")
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Source = path
	if strings.TrimSpace(cfg.File) == "" {
		cfg.File = DefaultFile
	}
	cfg.File = expandHome(strings.TrimSpace(cfg.File))
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	switch cfg.Output {
	case "":
		cfg.Output = OutputTable
	case OutputTable, OutputPlain, OutputJSON:
	default:
		return Default(), fmt.Errorf("config %s: invalid output %q (use table|plain|json)", path, cfg.Output)
	}
	return cfg, nil
}

// StoreFile applies the store path precedence: flag, $TASK_CLI_FILE, config.
func (c Config) StoreFile(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	if env := strings.TrimSpace(os.Getenv(EnvFile)); env != "" {
		return env
	}
	if strings.TrimSpace(c.File) != "" {
		return c.File
	}
	return DefaultFile
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
